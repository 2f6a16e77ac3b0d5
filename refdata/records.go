// Package refdata defines the typed records of the FAA aircraft reference
// registry and the static code tables used to label them.
//
// The source of truth for field names and code values is the FAA aircraft
// registration database release (ACFTREF, ENGINE, MASTER, DEALER, DEREG).
// This package provides the Go-native record types and lookup tables
// derived from those files.
package refdata

// Shape identifies which reference table a parsed row belongs to.
// Shape values double as table names in the store.
type Shape string

const (
	ShapeModels       Shape = "aircraft_models"
	ShapeEngines      Shape = "engines"
	ShapeRegistry     Shape = "aircraft_registry"
	ShapeDealers      Shape = "dealers"
	ShapeDeregistered Shape = "aircraft_deregistered"
	ShapeCustom       Shape = "custom_records"
)

// KnownShapes lists the shapes with dedicated tables and column mappings,
// in ingestion order (reference tables before the registry that points at them).
var KnownShapes = []Shape{
	ShapeModels,
	ShapeEngines,
	ShapeRegistry,
	ShapeDealers,
	ShapeDeregistered,
}

func (s Shape) String() string { return string(s) }

// AircraftModel is one row of the ACFTREF reference file: a certified
// manufacturer/model combination identified by its seven-character code.
type AircraftModel struct {
	Code             string `json:"code"`
	Manufacturer     string `json:"manufacturer,omitempty"`
	Model            string `json:"model,omitempty"`
	TypeAircraft     string `json:"type_aircraft,omitempty"`
	TypeEngine       string `json:"type_engine,omitempty"`
	AircraftCategory string `json:"aircraft_category,omitempty"`
	BuilderCertInd   string `json:"builder_cert_ind,omitempty"`
	NumEngines       int    `json:"num_engines,omitempty"`
	NumSeats         int    `json:"num_seats,omitempty"`
	WeightClass      string `json:"weight_class,omitempty"`
	Speed            string `json:"speed,omitempty"`
}

// Key returns the natural key of the record (the FAA MFR MDL code).
func (m *AircraftModel) Key() string { return m.Code }

// Engine is one row of the ENGINE reference file.
type Engine struct {
	Code         string `json:"code"`
	Manufacturer string `json:"manufacturer,omitempty"`
	Model        string `json:"model,omitempty"`
	TypeEngine   string `json:"type_engine,omitempty"`
	Horsepower   int    `json:"horsepower,omitempty"`
	Thrust       int    `json:"thrust,omitempty"`
}

// Key returns the natural key of the record (the FAA engine code).
func (e *Engine) Key() string { return e.Code }

// RegistryEntry is one row of the MASTER registry file: a currently
// registered aircraft identified by its N-number (tail number).
//
// ModeSHex is the 24-bit transponder address in uppercase hex. It is kept
// only when it matches the six-digit hex form; malformed values are dropped
// during normalization so the Mode-S index never holds junk.
type RegistryEntry struct {
	NNumber            string `json:"n_number"`
	SerialNumber       string `json:"serial_number,omitempty"`
	MfrMdlCode         string `json:"mfr_mdl_code,omitempty"`
	EngMfrMdl          string `json:"eng_mfr_mdl,omitempty"`
	YearMfr            int    `json:"year_mfr,omitempty"`
	RegistrantType     string `json:"registrant_type,omitempty"`
	RegistrantName     string `json:"registrant_name,omitempty"`
	Street             string `json:"street,omitempty"`
	City               string `json:"city,omitempty"`
	State              string `json:"state,omitempty"`
	ZipCode            string `json:"zip_code,omitempty"`
	Country            string `json:"country,omitempty"`
	LastActionDate     string `json:"last_action_date,omitempty"`
	CertIssueDate      string `json:"cert_issue_date,omitempty"`
	AirworthinessClass string `json:"airworthiness_class,omitempty"`
	TypeAircraft       string `json:"type_aircraft,omitempty"`
	TypeEngine         string `json:"type_engine,omitempty"`
	StatusCode         string `json:"status_code,omitempty"`
	ModeSHex           string `json:"mode_s_code_hex,omitempty"`
	AirWorthDate       string `json:"air_worth_date,omitempty"`
	ExpirationDate     string `json:"expiration_date,omitempty"`
	KitMfr             string `json:"kit_mfr,omitempty"`
	KitModel           string `json:"kit_model,omitempty"`
}

// Key returns the natural key of the record (the N-number).
func (r *RegistryEntry) Key() string { return r.NNumber }

// Dealer is one row of the DEALER certificate file.
type Dealer struct {
	CertificateNumber string `json:"certificate_number"`
	Ownership         string `json:"ownership,omitempty"`
	CertificateDate   string `json:"certificate_date,omitempty"`
	ExpirationDate    string `json:"expiration_date,omitempty"`
	Name              string `json:"name,omitempty"`
	Street            string `json:"street,omitempty"`
	City              string `json:"city,omitempty"`
	State             string `json:"state,omitempty"`
	ZipCode           string `json:"zip_code,omitempty"`
}

// Key returns the natural key of the record (the dealer certificate number).
func (d *Dealer) Key() string { return d.CertificateNumber }

// DeregisteredEntry is one row of the DEREG file: an aircraft removed from
// the registry. The same N-number can be cancelled more than once over the
// years, so the key is (n_number, cancel_date).
type DeregisteredEntry struct {
	NNumber        string `json:"n_number"`
	CancelDate     string `json:"cancel_date"`
	SerialNumber   string `json:"serial_number,omitempty"`
	MfrMdlCode     string `json:"mfr_mdl_code,omitempty"`
	StatusCode     string `json:"status_code,omitempty"`
	ModeSHex       string `json:"mode_s_code_hex,omitempty"`
	RegistrantName string `json:"registrant_name,omitempty"`
}
