package model

// Row status for soft-deletable records. Nothing is ever hard-deleted:
// DELETED rows stay in place and compensation logic runs on the transition.
const (
	StatusActive  = "ACTIVE"
	StatusDeleted = "DELETED"
)

// Sale types.
const (
	SaleCash   = "CASH"
	SaleCredit = "CREDIT"
)

// IVA tax classes (Paraguay).
const (
	Iva0  = "IVA_0"
	Iva5  = "IVA_5"
	Iva10 = "IVA_10"
)

// Audit log entry types.
const (
	LogCreate = "CREATE"
	LogUpdate = "UPDATE"
)
