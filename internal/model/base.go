package model

import (
	"github.com/google/uuid"
)

// ensureID fills a nil UUID primary key before insert. Postgres has its own
// uuid_generate_v4() default but the sqlite and mysql dialects do not.
func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
