package core

// Severity grades a catalog entry.
type Severity string

const (
	SeverityLow      Severity = "Low"
	SeverityMedium   Severity = "Medium"
	SeverityHigh     Severity = "High"
	SeverityCritical Severity = "Critical"
)

// VulnerabilityRecord is static metadata about one simulated flaw. It has no
// runtime effect on behavior; RelatedFlag names the profile flag that governs
// the corresponding code path.
type VulnerabilityRecord struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Severity       Severity `json:"severity"`
	Description    string   `json:"description"`
	ExploitExample string   `json:"exploitExample"`
	Impact         string   `json:"impact"`
	RelatedFlag    string   `json:"relatedFlag"`
}

// catalog is loaded once and never mutated. Order is stable.
var catalog = []VulnerabilityRecord{
	{
		ID:             "A01",
		Title:          "Broken Access Control",
		Severity:       SeverityHigh,
		Description:    "Privileged operations succeed without role verification",
		ExploitExample: "Call admin operations with any session",
		Impact:         "Full system access, user data exposure",
		RelatedFlag:    "accessControlEnforced",
	},
	{
		ID:             "A02",
		Title:          "Cryptographic Failures",
		Severity:       SeverityHigh,
		Description:    "Passwords stored in plain text",
		ExploitExample: "Read stored credentials from the ledger",
		Impact:         "Credential theft, session hijacking",
		RelatedFlag:    "plaintextPasswords",
	},
	{
		ID:             "A03",
		Title:          "SQL Injection",
		Severity:       SeverityCritical,
		Description:    "Direct string concatenation in simulated queries without sanitization",
		ExploitExample: "admin' OR '1'='1' --",
		Impact:         "Database compromise, data theft",
		RelatedFlag:    "sqlInjectionProtection",
	},
	{
		ID:             "A04",
		Title:          "Insecure Direct Object References",
		Severity:       SeverityHigh,
		Description:    "User IDs accepted in requests without ownership checks",
		ExploitExample: "Modify user ID parameters",
		Impact:         "Unauthorized data access",
		RelatedFlag:    "accessControlEnforced",
	},
	{
		ID:             "A05",
		Title:          "Security Misconfiguration",
		Severity:       SeverityMedium,
		Description:    "Weak password policy accepted at registration",
		ExploitExample: "Register with a three-character password",
		Impact:         "Trivial credential guessing",
		RelatedFlag:    "passwordMinLength",
	},
	{
		ID:             "A07",
		Title:          "Cross-Site Scripting (XSS)",
		Severity:       SeverityMedium,
		Description:    "User input handed to the presentation layer without sanitization",
		ExploitExample: "<script>alert('XSS')</script>",
		Impact:         "Session hijacking, data theft",
		RelatedFlag:    "xssProtection",
	},
	{
		ID:             "A08",
		Title:          "Race Condition in Funds Transfer",
		Severity:       SeverityHigh,
		Description:    "Read-check-write on the balance runs without serialization",
		ExploitExample: "Submit two concurrent transfers that each drain the balance",
		Impact:         "Double-spend, negative balances",
		RelatedFlag:    "raceConditionSafe",
	},
}

// Catalog returns the vulnerability records in stable order. The returned
// slice is a copy; callers cannot mutate the catalog through it.
func Catalog() []VulnerabilityRecord {
	out := make([]VulnerabilityRecord, len(catalog))
	copy(out, catalog)
	return out
}

// CatalogEntry looks up a record by id.
func CatalogEntry(id string) (VulnerabilityRecord, bool) {
	for _, rec := range catalog {
		if rec.ID == id {
			return rec, true
		}
	}
	return VulnerabilityRecord{}, false
}
