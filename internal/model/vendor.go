package model

// Vendor is one installer in the curated catalog.
// Tags follow the catalog file format (snake_case, as in vendors.json).
type Vendor struct {
	ID                     string   `json:"id" yaml:"id"`
	CompanyName            string   `json:"company_name" yaml:"company_name"`
	Verified               bool     `json:"verification_status" yaml:"verification_status"`
	SystemSizeMinKW        float64  `json:"system_size_min_kw" yaml:"system_size_min_kw"`
	SystemSizeMaxKW        float64  `json:"system_size_max_kw" yaml:"system_size_max_kw"`
	Headquarters           string   `json:"headquarters" yaml:"headquarters"`
	ServiceAreas           []string `json:"service_areas" yaml:"service_areas"`
	Rating                 float64  `json:"rating" yaml:"rating"`
	YearsInBusiness        int      `json:"years_in_business" yaml:"years_in_business"`
	InstallationsCompleted int      `json:"installations_completed" yaml:"installations_completed"`
	Specialties            []string `json:"specialties" yaml:"specialties"`
	Phone                  string   `json:"phone" yaml:"phone"`
	Email                  string   `json:"email" yaml:"email"`
	AvgResponseTime        string   `json:"avg_response_time" yaml:"avg_response_time"`
}

// VendorMatch is a vendor enriched for one match request.
type VendorMatch struct {
	ID                     string   `json:"id"`
	CompanyName            string   `json:"company_name"`
	Rating                 float64  `json:"rating"`
	YearsInBusiness        int      `json:"years_in_business"`
	Headquarters           string   `json:"headquarters"`
	ServiceAreas           []string `json:"service_areas"`
	SystemCapacityRange    string   `json:"system_capacity_range"`
	Specialties            []string `json:"specialties"`
	Phone                  string   `json:"phone"`
	Email                  string   `json:"email"`
	AvgResponseTime        string   `json:"avg_response_time"`
	InstallationsCompleted int      `json:"installations_completed"`
	RecommendedFor         string   `json:"recommended_for"`
}
