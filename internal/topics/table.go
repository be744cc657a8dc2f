package topics

// Uncategorized is the sentinel topic for articles matching no keyword.
const Uncategorized = "Other/Uncategorized"

type Topic struct {
	Name     string
	Keywords []string
}

// Table - упорядоченный список тем: порядок объявления = порядок вывода.
type Table []Topic

func (t Table) Names() []string {
	names := make([]string, len(t))
	for i, topic := range t {
		names[i] = topic.Name
	}
	return names
}

var defaultTable = Table{
	{
		Name: "Policy & Regulation",
		Keywords: []string{
			"policy", "regulation", "medicare", "medicaid", "congress",
			"legislation", "law", "senate", "federal",
		},
	},
	{
		Name: "Hospitals & Clinics",
		Keywords: []string{
			"hospital", "clinic", "emergency room", "nursing home",
		},
	},
	{
		Name: "Insurance & Costs",
		Keywords: []string{
			"insurance", "insurer", "premium", "deductible", "copay",
			"medical debt", "billing", "price",
		},
	},
	{
		Name: "Pharma & Drugs",
		Keywords: []string{
			"pharma", "drug", "prescription", "vaccine", "fda", "opioid",
			"medication",
		},
	},
	{
		Name: "Public Health",
		Keywords: []string{
			"public health", "outbreak", "epidemic", "pandemic", "cdc",
			"infection", "virus", "disease",
		},
	},
	{
		Name: "Rural Health",
		Keywords: []string{
			"rural", "farm", "small town", "countryside",
		},
	},
	{
		Name: "Mental Health",
		Keywords: []string{
			"mental health", "depression", "anxiety", "suicide", "addiction",
			"therapy",
		},
	},
	{
		Name: "Workforce & Staffing",
		Keywords: []string{
			"staffing", "shortage", "nurse", "workforce", "burnout", "union",
			"strike",
		},
	},
	{
		Name: "Technology & AI",
		Keywords: []string{
			"ai", "artificial intelligence", "telehealth", "digital",
			"technology", "software", "algorithm", "data",
		},
	},
}

func DefaultTable() Table {
	return defaultTable
}
