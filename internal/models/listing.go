package models

import "time"

// Listing is a search hit of any listing type.
type Listing interface {
	ListingType() ListingType
	Suggestion() Suggestion
}

// Owner is the populated landlord/employer/provider/owner reference.
type Owner struct {
	ID    string `bson:"_id" json:"_id"`
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
	Phone string `bson:"phone,omitempty" json:"phone,omitempty"`
}

type Address struct {
	Street  string `bson:"street,omitempty" json:"street,omitempty"`
	City    string `bson:"city,omitempty" json:"city,omitempty"`
	State   string `bson:"state,omitempty" json:"state,omitempty"`
	ZipCode string `bson:"zipCode,omitempty" json:"zipCode,omitempty"`
	Country string `bson:"country,omitempty" json:"country,omitempty"`
}

type Coordinates struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

type Image struct {
	URL       string `bson:"url" json:"url"`
	Caption   string `bson:"caption,omitempty" json:"caption,omitempty"`
	IsPrimary bool   `bson:"isPrimary" json:"isPrimary"`
}

type ContactInfo struct {
	Name             string `bson:"name,omitempty" json:"name,omitempty"`
	Phone            string `bson:"phone,omitempty" json:"phone,omitempty"`
	Email            string `bson:"email,omitempty" json:"email,omitempty"`
	Website          string `bson:"website,omitempty" json:"website,omitempty"`
	PreferredContact string `bson:"preferredContact,omitempty" json:"preferredContact,omitempty"`
}

type Rating struct {
	Average float64 `bson:"average" json:"average"`
	Count   int     `bson:"count" json:"count"`
}

// Suggestion is the projected listing document returned by the type-ahead
// endpoint. Only the fields selected for the listing's type are set, at the
// same paths they have in the stored document.
type Suggestion struct {
	ID       string              `json:"_id"`
	Title    string              `json:"title,omitempty"`
	Name     string              `json:"name,omitempty"`
	Category string              `json:"category,omitempty"`
	Address  *SuggestionAddress  `json:"address,omitempty"`
	Company  *SuggestionCompany  `json:"company,omitempty"`
	Location *SuggestionLocation `json:"location,omitempty"`
}

type SuggestionAddress struct {
	City  string `json:"city,omitempty"`
	State string `json:"state,omitempty"`
}

type SuggestionCompany struct {
	Name string `json:"name"`
}

type SuggestionLocation struct {
	Address     *SuggestionAddress     `json:"address,omitempty"`
	ServiceArea *SuggestionServiceArea `json:"serviceArea,omitempty"`
}

type SuggestionServiceArea struct {
	Cities []string `json:"cities"`
}

type RentalPrice struct {
	Amount   float64 `bson:"amount" json:"amount"`
	Currency string  `bson:"currency,omitempty" json:"currency,omitempty"`
	Period   string  `bson:"period,omitempty" json:"period,omitempty"`
}

type Size struct {
	Value float64 `bson:"value" json:"value"`
	Unit  string  `bson:"unit,omitempty" json:"unit,omitempty"`
}

type Rental struct {
	ID            string       `bson:"_id" json:"_id"`
	Landlord      *Owner       `bson:"landlord,omitempty" json:"landlord,omitempty"`
	Title         string       `bson:"title" json:"title"`
	Description   string       `bson:"description,omitempty" json:"description,omitempty"`
	PropertyType  string       `bson:"propertyType,omitempty" json:"propertyType,omitempty"`
	Address       Address      `bson:"address" json:"address"`
	Coordinates   *Coordinates `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
	Price         RentalPrice  `bson:"price" json:"price"`
	Bedrooms      int          `bson:"bedrooms" json:"bedrooms"`
	Bathrooms     int          `bson:"bathrooms" json:"bathrooms"`
	Size          *Size        `bson:"size,omitempty" json:"size,omitempty"`
	AvailableFrom *time.Time   `bson:"availableFrom,omitempty" json:"availableFrom,omitempty"`
	LeaseTerm     string       `bson:"leaseTerm,omitempty" json:"leaseTerm,omitempty"`
	Features      []string     `bson:"features,omitempty" json:"features,omitempty"`
	Images        []Image      `bson:"images,omitempty" json:"images,omitempty"`
	ContactInfo   *ContactInfo `bson:"contactInfo,omitempty" json:"contactInfo,omitempty"`
	Status        string       `bson:"status" json:"status"`
	IsPremium     bool         `bson:"isPremium" json:"isPremium"`
	Views         int          `bson:"views" json:"views"`
	Inquiries     int          `bson:"inquiries" json:"inquiries"`
	CreatedAt     time.Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt     *time.Time   `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

func (r Rental) ListingType() ListingType { return ListingTypeRentals }

func (r Rental) Suggestion() Suggestion {
	return Suggestion{
		ID:      r.ID,
		Title:   r.Title,
		Address: &SuggestionAddress{City: r.Address.City, State: r.Address.State},
	}
}

type Company struct {
	Name        string `bson:"name" json:"name"`
	Logo        string `bson:"logo,omitempty" json:"logo,omitempty"`
	Website     string `bson:"website,omitempty" json:"website,omitempty"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}

type JobLocation struct {
	Type        string       `bson:"type,omitempty" json:"type,omitempty"`
	Address     Address      `bson:"address" json:"address"`
	Coordinates *Coordinates `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
}

type Salary struct {
	Min          *float64 `bson:"min,omitempty" json:"min,omitempty"`
	Max          *float64 `bson:"max,omitempty" json:"max,omitempty"`
	Currency     string   `bson:"currency,omitempty" json:"currency,omitempty"`
	Period       string   `bson:"period,omitempty" json:"period,omitempty"`
	IsNegotiable bool     `bson:"isNegotiable" json:"isNegotiable"`
}

type JobRequirements struct {
	Skills         []string `bson:"skills,omitempty" json:"skills,omitempty"`
	Languages      []string `bson:"languages,omitempty" json:"languages,omitempty"`
	Certifications []string `bson:"certifications,omitempty" json:"certifications,omitempty"`
}

type Job struct {
	ID                  string           `bson:"_id" json:"_id"`
	Employer            *Owner           `bson:"employer,omitempty" json:"employer,omitempty"`
	Title               string           `bson:"title" json:"title"`
	Description         string           `bson:"description,omitempty" json:"description,omitempty"`
	Company             Company          `bson:"company" json:"company"`
	JobType             string           `bson:"jobType,omitempty" json:"jobType,omitempty"`
	Category            string           `bson:"category,omitempty" json:"category,omitempty"`
	Location            JobLocation      `bson:"location" json:"location"`
	Salary              *Salary          `bson:"salary,omitempty" json:"salary,omitempty"`
	Requirements        *JobRequirements `bson:"requirements,omitempty" json:"requirements,omitempty"`
	Benefits            []string         `bson:"benefits,omitempty" json:"benefits,omitempty"`
	Responsibilities    []string         `bson:"responsibilities,omitempty" json:"responsibilities,omitempty"`
	ApplicationDeadline *time.Time       `bson:"applicationDeadline,omitempty" json:"applicationDeadline,omitempty"`
	StartDate           *time.Time       `bson:"startDate,omitempty" json:"startDate,omitempty"`
	ContactInfo         *ContactInfo     `bson:"contactInfo,omitempty" json:"contactInfo,omitempty"`
	Status              string           `bson:"status" json:"status"`
	IsPremium           bool             `bson:"isPremium" json:"isPremium"`
	Views               int              `bson:"views" json:"views"`
	Applications        int              `bson:"applications" json:"applications"`
	CreatedAt           time.Time        `bson:"createdAt" json:"createdAt"`
	UpdatedAt           *time.Time       `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

func (j Job) ListingType() ListingType { return ListingTypeJobs }

func (j Job) Suggestion() Suggestion {
	return Suggestion{
		ID:       j.ID,
		Title:    j.Title,
		Company:  &SuggestionCompany{Name: j.Company.Name},
		Location: &SuggestionLocation{Address: &SuggestionAddress{City: j.Location.Address.City}},
	}
}

type SkillPricing struct {
	Type        string   `bson:"type,omitempty" json:"type,omitempty"`
	Amount      *float64 `bson:"amount,omitempty" json:"amount,omitempty"`
	Currency    string   `bson:"currency,omitempty" json:"currency,omitempty"`
	Description string   `bson:"description,omitempty" json:"description,omitempty"`
}

type ServiceArea struct {
	Radius      float64      `bson:"radius,omitempty" json:"radius,omitempty"`
	Cities      []string     `bson:"cities,omitempty" json:"cities,omitempty"`
	Coordinates *Coordinates `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
}

type SkillLocation struct {
	Type        string      `bson:"type,omitempty" json:"type,omitempty"`
	ServiceArea ServiceArea `bson:"serviceArea" json:"serviceArea"`
}

type Skill struct {
	ID            string        `bson:"_id" json:"_id"`
	Provider      *Owner        `bson:"provider,omitempty" json:"provider,omitempty"`
	Title         string        `bson:"title" json:"title"`
	Description   string        `bson:"description,omitempty" json:"description,omitempty"`
	Category      string        `bson:"category,omitempty" json:"category,omitempty"`
	Subcategory   string        `bson:"subcategory,omitempty" json:"subcategory,omitempty"`
	ServiceType   string        `bson:"serviceType,omitempty" json:"serviceType,omitempty"`
	Pricing       *SkillPricing `bson:"pricing,omitempty" json:"pricing,omitempty"`
	Location      SkillLocation `bson:"location" json:"location"`
	Skills        []string      `bson:"skills,omitempty" json:"skills,omitempty"`
	Languages     []string      `bson:"languages,omitempty" json:"languages,omitempty"`
	Images        []Image       `bson:"images,omitempty" json:"images,omitempty"`
	ContactInfo   *ContactInfo  `bson:"contactInfo,omitempty" json:"contactInfo,omitempty"`
	Status        string        `bson:"status" json:"status"`
	IsPremium     bool          `bson:"isPremium" json:"isPremium"`
	IsVerified    bool          `bson:"isVerified" json:"isVerified"`
	Rating        Rating        `bson:"rating" json:"rating"`
	Views         int           `bson:"views" json:"views"`
	Inquiries     int           `bson:"inquiries" json:"inquiries"`
	CompletedJobs int           `bson:"completedJobs" json:"completedJobs"`
	CreatedAt     time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt     *time.Time    `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

func (s Skill) ListingType() ListingType { return ListingTypeSkills }

func (s Skill) Suggestion() Suggestion {
	return Suggestion{
		ID:       s.ID,
		Title:    s.Title,
		Category: s.Category,
		Location: &SuggestionLocation{ServiceArea: &SuggestionServiceArea{Cities: s.Location.ServiceArea.Cities}},
	}
}

type BusinessPrice struct {
	Amount   float64 `bson:"amount" json:"amount"`
	Currency string  `bson:"currency,omitempty" json:"currency,omitempty"`
	Type     string  `bson:"type,omitempty" json:"type,omitempty"`
}

type BusinessOffering struct {
	Name        string         `bson:"name" json:"name"`
	Description string         `bson:"description,omitempty" json:"description,omitempty"`
	Price       *BusinessPrice `bson:"price,omitempty" json:"price,omitempty"`
	InStock     *bool          `bson:"inStock,omitempty" json:"inStock,omitempty"`
}

type Business struct {
	ID             string             `bson:"_id" json:"_id"`
	Owner          *Owner             `bson:"owner,omitempty" json:"owner,omitempty"`
	Name           string             `bson:"name" json:"name"`
	Description    string             `bson:"description,omitempty" json:"description,omitempty"`
	Category       string             `bson:"category,omitempty" json:"category,omitempty"`
	Subcategory    string             `bson:"subcategory,omitempty" json:"subcategory,omitempty"`
	ContactInfo    *ContactInfo       `bson:"contactInfo,omitempty" json:"contactInfo,omitempty"`
	Address        Address            `bson:"address" json:"address"`
	Coordinates    *Coordinates       `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
	Services       []BusinessOffering `bson:"services,omitempty" json:"services,omitempty"`
	Products       []BusinessOffering `bson:"products,omitempty" json:"products,omitempty"`
	Images         []Image            `bson:"images,omitempty" json:"images,omitempty"`
	Logo           string             `bson:"logo,omitempty" json:"logo,omitempty"`
	Founded        int                `bson:"founded,omitempty" json:"founded,omitempty"`
	Employees      string             `bson:"employees,omitempty" json:"employees,omitempty"`
	PaymentMethods []string           `bson:"paymentMethods,omitempty" json:"paymentMethods,omitempty"`
	Status         string             `bson:"status" json:"status"`
	IsPremium      bool               `bson:"isPremium" json:"isPremium"`
	IsVerified     bool               `bson:"isVerified" json:"isVerified"`
	Rating         Rating             `bson:"rating" json:"rating"`
	Views          int                `bson:"views" json:"views"`
	Inquiries      int                `bson:"inquiries" json:"inquiries"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      *time.Time         `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

func (b Business) ListingType() ListingType { return ListingTypeBusinesses }

func (b Business) Suggestion() Suggestion {
	return Suggestion{
		ID:       b.ID,
		Name:     b.Name,
		Category: b.Category,
		Address:  &SuggestionAddress{City: b.Address.City},
	}
}
