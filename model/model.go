package model

import "time"

// Districts lists the administrative districts a user may register under.
var Districts = []string{
	"진안읍",
	"마령면",
	"부귀면",
	"정천면",
	"용담면",
	"백운면",
	"주천면",
	"동향면",
	"안천면",
	"성수면",
	"상전면",
}

func ValidDistrict(district string) bool {
	for _, d := range Districts {
		if d == district {
			return true
		}
	}
	return false
}

type User struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	District  string    `json:"district"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

type AdminUser struct {
	ID        int        `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email,omitempty"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"isActive"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
	CreatedAt time.Time  `json:"createdAt,omitempty"`
}

type Signature struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// PolicyCategories is the fixed set of proposal categories.
var PolicyCategories = []string{
	"welfare", "economy", "agriculture", "infrastructure",
	"tourism", "population", "administration", "ai",
	"committee", "allowance",
}

func ValidPolicyCategory(category string) bool {
	for _, c := range PolicyCategories {
		if c == category {
			return true
		}
	}
	return false
}

type Policy struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Category     string    `json:"category"`
	AuthorID     int       `json:"authorId"`
	SupportCount int       `json:"supportCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Notice struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Type      string    `json:"type"` // urgent, general, success
	CreatedAt time.Time `json:"createdAt"`
}

type Resource struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Type        string    `json:"type"` // document, news, video
	Url         string    `json:"url,omitempty"`
	Description string    `json:"description,omitempty"`
	Metadata    any       `json:"metadata,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type WebContent struct {
	ID        int       `json:"id"`
	Section   string    `json:"section"`
	Key       string    `json:"key"`
	Title     string    `json:"title,omitempty"`
	Content   string    `json:"content"`
	Metadata  any       `json:"metadata,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// Stats is the campaign-wide counter set shown on the public dashboard.
type Stats struct {
	SignatureCount int `json:"signatureCount"`
	PolicyCount    int `json:"policyCount"`
	SupportCount   int `json:"supportCount"`
	UserCount      int `json:"userCount"`
}
