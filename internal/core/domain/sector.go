package domain

// Sector is a global catalog tag with no owner. Created and deleted by system
// admins; deletion is blocked while any training assignment or organization
// adoption references it.
type Sector struct {
	SectorID    string `json:"sectorID"` // Primary Key (UUID)
	Name        string `json:"name"`
	Description string `json:"description"`
	AuditFields
}

// OrganizationSector is the adoption edge Organization -> Sector: the
// organization has opted into this sector's catalog. Unique pair.
type OrganizationSector struct {
	OrganizationID string `json:"organizationID"`
	SectorID       string `json:"sectorID"`
}

// UserSector is the assignment edge User -> Sector, optionally tagged with the
// organization through which it was granted (nil for self-selected personal
// assignments). Unique per (user, sector).
type UserSector struct {
	UserID         string  `json:"userID"`
	SectorID       string  `json:"sectorID"`
	OrganizationID *string `json:"organizationID,omitempty"`
}
