package dsl

// Canonical specification types. A Spec is only ever produced by
// Normalize; generators consume no other representation.

// Frameworks lists the supported target framework identifiers.
var Frameworks = []string{"django", "go-fiber", "rails"}

// FieldTypes is the closed set of recognized field type names.
var FieldTypes = []string{
	"string", "text", "integer", "float", "boolean", "datetime",
	"date", "uuid", "url", "email", "json", "foreign_key",
	"many_to_many", "choice",
}

// AuthProviders lists the supported auth.provider values.
var AuthProviders = []string{"jwt", "oauth2", "custom"}

// RelationshipTypes lists the recognized model relationship kinds.
var RelationshipTypes = []string{"foreign_key", "many_to_many", "one_to_one"}

// OnDeletePolicies lists the accepted on_delete values for
// foreign_key relationships.
var OnDeletePolicies = []string{"cascade", "protect", "set_null", "set_default"}

// Spec is a normalized backend specification.
type Spec struct {
	Meta       Meta
	Models     []Model
	Auth       *Auth
	API        *API
	Jobs       map[string]any
	Deployment map[string]any
}

// Model returns the model with the given name, if declared.
func (s *Spec) Model(name string) (*Model, bool) {
	for i := range s.Models {
		if s.Models[i].Name == name {
			return &s.Models[i], true
		}
	}
	return nil, false
}

// Meta carries project-level metadata.
type Meta struct {
	Name        string
	Description string
	Version     string
	Framework   string
	Database    string
}

// Model describes one data model with its fields in declaration order.
type Model struct {
	Name          string
	Description   string
	Fields        []Field
	Relationships []Relationship
}

// PrimaryKey returns the primary-key field of the model, if any.
func (m *Model) PrimaryKey() (Field, bool) {
	for _, f := range m.Fields {
		if f.PrimaryKey {
			return f, true
		}
	}
	return Field{}, false
}

// HasField reports whether a field with the given name is declared.
func (m *Model) HasField(name string) bool {
	for _, f := range m.Fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

// Field is one typed model field plus its modifiers.
type Field struct {
	Name          string
	Type          string
	Required      bool
	Unique        bool
	PrimaryKey    bool
	AutoGenerated bool
	MaxLength     int
	MinValue      *float64
	MaxValue      *float64
	Default       any
	HelpText      string
	Choices       []string
	// Target names the referenced model for foreign_key and
	// many_to_many typed fields. Optional.
	Target string
}

// Relationship links a model to a target model.
type Relationship struct {
	Type     string
	Target   string
	OnDelete string
}

// Auth describes the authentication block.
type Auth struct {
	Provider       string
	UserModel      string
	RequiredFields []string
	OptionalFields []string
}

// API describes the endpoint list.
type API struct {
	BasePath  string
	Endpoints []Endpoint
}

// Endpoint is one declared API route.
type Endpoint struct {
	Path         string
	Method       string
	Handler      string
	Public       bool
	AuthRequired bool
}

func isOneOf(v string, set []string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
