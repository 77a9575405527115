package filters

import (
	"opsdesk-backend/utils"

	"gorm.io/gorm"
)

// DocumentFilter narrows a document list by expiration range and category.
type DocumentFilter struct {
	From     string
	To       string
	Category string
}

func (f DocumentFilter) IsZero() bool {
	return f == DocumentFilter{}
}

func (f DocumentFilter) Encode() string {
	tokens := []string{
		token("from", f.From),
		token("to", f.To),
		token("category", f.Category),
	}
	return joinTokens(tokens)
}

func DecodeDocumentFilter(s string) (DocumentFilter, error) {
	kv := splitTokens(s)
	f := DocumentFilter{
		From:     kv["from"],
		To:       kv["to"],
		Category: kv["category"],
	}
	for _, raw := range []string{f.From, f.To} {
		if _, err := utils.ParseDate(raw); err != nil {
			return DocumentFilter{}, err
		}
	}
	return f, nil
}

func (f DocumentFilter) Apply(db *gorm.DB) (*gorm.DB, error) {
	from, err := utils.ParseDate(f.From)
	if err != nil {
		return nil, err
	}
	to, err := utils.ParseDate(f.To)
	if err != nil {
		return nil, err
	}
	switch {
	case from != nil && to != nil && from.Before(*to):
		db = db.Where("documents.expiration >= ?", *from).Where("documents.expiration <= ?", *to)
	case from != nil:
		db = db.Where("documents.expiration >= ?", *from)
	case to != nil:
		db = db.Where("documents.expiration <= ?", *to)
	}
	if f.Category != "" {
		db = db.Where("documents.category = ?", f.Category)
	}
	return db, nil
}
