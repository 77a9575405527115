package filters

import (
	"gorm.io/gorm"
)

// ClientFilter narrows the client list by office.
type ClientFilter struct {
	Office string
}

func (f ClientFilter) IsZero() bool {
	return f == ClientFilter{}
}

func (f ClientFilter) Encode() string {
	return joinTokens([]string{token("office", f.Office)})
}

func DecodeClientFilter(s string) ClientFilter {
	kv := splitTokens(s)
	return ClientFilter{Office: kv["office"]}
}

func (f ClientFilter) Apply(db *gorm.DB) *gorm.DB {
	if f.Office != "" {
		db = db.Where("clients.office_id = ?", f.Office)
	}
	return db
}
