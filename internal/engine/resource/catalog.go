package resource

import (
	"strconv"
	"strings"

	"go.trai.ch/courseware/internal/core/domain"
	"go.trai.ch/courseware/internal/core/ports"
	"go.trai.ch/courseware/internal/engine/cache"
	"go.trai.ch/zerr"
)

// Endpoints of the LMS backend. Response layouts differ per endpoint.
var (
	CategoriesDescriptor = Descriptor{
		Name:     "categories",
		Singular: "category",
		Path:     "/category",
		List:     domain.Enveloped(),
		Item:     domain.Enveloped(),
	}

	ClientsDescriptor = Descriptor{
		Name:     "clients",
		Singular: "client",
		Path:     "/client",
		List:     domain.Field("clients"),
		Item:     domain.Enveloped(),
	}

	CoursesDescriptor = Descriptor{
		Name:     "courses",
		Singular: "course",
		Path:     "/courses",
		List:     domain.Bare(),
		Item:     domain.Bare(),
	}

	PedagogiesDescriptor = Descriptor{
		Name:     "pedagogies",
		Singular: "pedagogy",
		Path:     "/pedagogy",
		List:     domain.Enveloped(),
		Item:     domain.Enveloped(),
	}
)

// Categories is the category collection service.
type Categories = Service[domain.Category, domain.CategoryInput]

// Clients is the client collection service.
type Clients = Service[domain.Client, domain.ClientInput]

// Courses is the course collection service.
type Courses = Service[domain.Course, domain.CourseInput]

// Pedagogies is the pedagogy collection service.
type Pedagogies = Service[domain.Pedagogy, domain.PedagogyInput]

// NewCategories creates the category service.
func NewCategories(requester ports.Requester, log ports.Logger, opts ...cache.Option) *Categories {
	return New[domain.Category, domain.CategoryInput](CategoriesDescriptor, Record[domain.Category]{
		ID:      func(c domain.Category) string { return c.ID },
		Columns: []string{"ID", "NAME", "DESCRIPTION"},
		Row: func(c domain.Category) []string {
			return []string{c.ID, c.Name, truncate(c.Description, 48)}
		},
	}, requester, log, opts...)
}

// NewClients creates the client service.
func NewClients(requester ports.Requester, log ports.Logger, opts ...cache.Option) *Clients {
	return New[domain.Client, domain.ClientInput](ClientsDescriptor, Record[domain.Client]{
		ID:      func(c domain.Client) string { return c.ID },
		Columns: []string{"ID", "NAME", "COMPANY", "EMAIL"},
		Row: func(c domain.Client) []string {
			return []string{c.ID, c.Name, c.Company, c.Email}
		},
	}, requester, log, opts...)
}

// NewCourses creates the course service.
func NewCourses(requester ports.Requester, log ports.Logger, opts ...cache.Option) *Courses {
	return New[domain.Course, domain.CourseInput](CoursesDescriptor, Record[domain.Course]{
		ID:      func(c domain.Course) string { return c.ID },
		Columns: []string{"ID", "TITLE", "CATEGORY", "LEVEL", "MODULES"},
		Row: func(c domain.Course) []string {
			return []string{c.ID, c.Title, c.CategoryID, c.Level, strconv.Itoa(len(c.Modules))}
		},
	}, requester, log, opts...)
}

// NewPedagogies creates the pedagogy service.
func NewPedagogies(requester ports.Requester, log ports.Logger, opts ...cache.Option) *Pedagogies {
	return New[domain.Pedagogy, domain.PedagogyInput](PedagogiesDescriptor, Record[domain.Pedagogy]{
		ID:      func(p domain.Pedagogy) string { return p.ID },
		Columns: []string{"ID", "COURSE", "I DO", "WE DO", "YOU DO"},
		Row: func(p domain.Pedagogy) []string {
			return []string{
				p.ID, p.CourseID,
				strconv.Itoa(len(p.IDo)), strconv.Itoa(len(p.WeDo)), strconv.Itoa(len(p.YouDo)),
			}
		},
	}, requester, log, opts...)
}

// Catalog holds one service per backend collection.
type Catalog struct {
	Categories *Categories
	Clients    *Clients
	Courses    *Courses
	Pedagogies *Pedagogies
}

// NewCatalog creates every collection service with the same cache options.
func NewCatalog(requester ports.Requester, log ports.Logger, opts ...cache.Option) *Catalog {
	return &Catalog{
		Categories: NewCategories(requester, log, opts...),
		Clients:    NewClients(requester, log, opts...),
		Courses:    NewCourses(requester, log, opts...),
		Pedagogies: NewPedagogies(requester, log, opts...),
	}
}

// All returns the collections in display order.
func (c *Catalog) All() []Collection {
	return []Collection{c.Categories, c.Clients, c.Courses, c.Pedagogies}
}

// Lookup finds a collection by its plural or singular name, case-insensitively.
func (c *Catalog) Lookup(name string) (Collection, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, col := range c.All() {
		d := col.Descriptor()
		if name == d.Name || name == d.Singular {
			return col, nil
		}
	}
	return nil, zerr.With(domain.ErrUnknownResource, "resource", name)
}

// Close closes every collection.
func (c *Catalog) Close() {
	for _, col := range c.All() {
		col.Close()
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
