package template

// Canonical field names recognised by the extractor prompt and the synonym table.
const (
	FieldFullName     = "Full Name"
	FieldEmployeeID   = "Employee ID"
	FieldDepartment   = "Department"
	FieldCompany      = "Company"
	FieldStartDate    = "Start Date"
	FieldJobTitle     = "Job Title"
	FieldManagerName  = "Manager Name"
	FieldAnnualSalary = "Annual Salary"
)

// SynonymEntry lists the accepted placeholder spellings for one field.
type SynonymEntry struct {
	Field    string
	Synonyms []string
}

// SynonymTable is scanned in declaration order. "Name" is registered both
// inside the Full Name entry and as its own alias entry; the Full Name entry
// wins because it comes first.
var SynonymTable = []SynonymEntry{
	{Field: FieldFullName, Synonyms: []string{"Name", "Full Name", "Employee Name", "Person Name"}},
	{Field: "Name", Synonyms: []string{"Name", "Full Name", "Employee Name", "Person Name"}},
	{Field: FieldDepartment, Synonyms: []string{"Department", "Dept", "Team", "Division"}},
	{Field: FieldCompany, Synonyms: []string{"Company", "Organization", "Organization Name", "Employer"}},
	{Field: FieldStartDate, Synonyms: []string{"Start Date", "Joining Date", "Hire Date", "Date Joined"}},
	{Field: FieldJobTitle, Synonyms: []string{"Job Title", "Position", "Role", "Designation"}},
	{Field: FieldManagerName, Synonyms: []string{"Manager Name", "Manager", "Supervisor", "Reporting To"}},
	{Field: FieldEmployeeID, Synonyms: []string{"Employee ID", "ID", "Employee Number", "Staff ID"}},
	{Field: FieldAnnualSalary, Synonyms: []string{"Annual Salary", "Salary", "Compensation", "Pay"}},
}

var canonicalFields = []string{
	FieldFullName,
	FieldEmployeeID,
	FieldDepartment,
	FieldCompany,
	FieldStartDate,
	FieldJobTitle,
	FieldManagerName,
	FieldAnnualSalary,
}

// CanonicalFields returns the eight field names the extractor is asked for.
func CanonicalFields() []string {
	out := make([]string, len(canonicalFields))
	copy(out, canonicalFields)
	return out
}

// LookupSynonyms returns the first table entry whose synonyms contain key.
// Matching is case-sensitive.
func LookupSynonyms(key string) (SynonymEntry, bool) {
	for _, e := range SynonymTable {
		if e.has(key) {
			return e, true
		}
	}
	return SynonymEntry{}, false
}

func (e SynonymEntry) has(key string) bool {
	for _, s := range e.Synonyms {
		if s == key {
			return true
		}
	}
	return false
}

// Field is one extracted key/value pair.
type Field struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Fields keeps extracted pairs in the order the extractor produced them.
// Fill depends on that order.
type Fields []Field

// Get returns the value of the first pair with the given key.
func (f Fields) Get(key string) (string, bool) {
	for _, p := range f {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Map flattens the pairs for display; later duplicates win.
func (f Fields) Map() map[string]string {
	out := make(map[string]string, len(f))
	for _, p := range f {
		out[p.Key] = p.Value
	}
	return out
}
