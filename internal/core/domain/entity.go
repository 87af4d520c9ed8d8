package domain

import "time"

// Category groups courses in the catalog.
type Category struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitzero"`
	UpdatedAt   time.Time `json:"updatedAt,omitzero"`
}

// CategoryInput is the body of a category create or update.
type CategoryInput struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description,omitempty" validate:"max=1000"`
}

// Client is an organisation the academy delivers training to.
type Client struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Company   string    `json:"company,omitempty"`
	Logo      string    `json:"logo,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

// ClientInput is the body of a client create or update.
type ClientInput struct {
	Name    string `json:"name" validate:"required,min=2,max=200"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   string `json:"phone,omitempty" validate:"omitempty,e164"`
	Company string `json:"company,omitempty" validate:"max=200"`
	Logo    string `json:"logo,omitempty" validate:"omitempty,url"`
}

// Course is a catalog entry with its module tree.
type Course struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug,omitempty"`
	Description string    `json:"description,omitempty"`
	CategoryID  string    `json:"category,omitempty"`
	Level       string    `json:"level,omitempty"`
	Duration    string    `json:"duration,omitempty"`
	Modules     []Module  `json:"modules,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitzero"`
	UpdatedAt   time.Time `json:"updatedAt,omitzero"`
}

// Module is a section of a course.
type Module struct {
	ID     string  `json:"_id,omitempty"`
	Title  string  `json:"title"`
	Topics []Topic `json:"topics,omitempty"`
}

// Topic is a lesson inside a module.
type Topic struct {
	ID        string     `json:"_id,omitempty"`
	Title     string     `json:"title"`
	SubTopics []SubTopic `json:"subTopics,omitempty"`
}

// SubTopic is the smallest unit of course content.
type SubTopic struct {
	ID    string `json:"_id,omitempty"`
	Title string `json:"title"`
}

// CourseInput is the body of a course create or update.
type CourseInput struct {
	Title       string `json:"title" validate:"required,min=2,max=200"`
	Slug        string `json:"slug,omitempty" validate:"omitempty,max=200,lowercase"`
	Description string `json:"description,omitempty" validate:"max=5000"`
	CategoryID  string `json:"category" validate:"required"`
	Level       string `json:"level,omitempty" validate:"omitempty,oneof=beginner intermediate advanced"`
	Duration    string `json:"duration,omitempty" validate:"max=50"`
}

// Pedagogy holds the I Do / We Do / You Do activities attached to a course.
type Pedagogy struct {
	ID       string   `json:"_id"`
	CourseID string   `json:"courseId"`
	IDo      []string `json:"I_Do,omitempty"`
	WeDo     []string `json:"We_Do,omitempty"`
	YouDo    []string `json:"You_Do,omitempty"`
}

// PedagogyInput is the body of a pedagogy create or update.
type PedagogyInput struct {
	CourseID string   `json:"courseId" validate:"required"`
	IDo      []string `json:"I_Do,omitempty" validate:"dive,required"`
	WeDo     []string `json:"We_Do,omitempty" validate:"dive,required"`
	YouDo    []string `json:"You_Do,omitempty" validate:"dive,required"`
}
