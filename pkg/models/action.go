package models

// Category groups actions by the CRM domain they operate on.
type Category string

const (
	CategoryCustomer   Category = "customer"
	CategoryProposal   Category = "proposal"
	CategoryAnalytics  Category = "analytics"
	CategoryTodo       Category = "todo"
	CategoryBroadcast  Category = "broadcast"
	CategoryProduct    Category = "product"
	CategoryNavigation Category = "navigation"
	CategoryData       Category = "data"
	CategorySystem     Category = "system"
)

// Priority orders actions inside suggestion lists and help surfaces.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// PermissionLevel is the minimum capability a user needs to run an action.
type PermissionLevel string

const (
	PermissionRead   PermissionLevel = "read"
	PermissionWrite  PermissionLevel = "write"
	PermissionAdmin  PermissionLevel = "admin"
	PermissionSystem PermissionLevel = "system"
)

// ParameterType enumerates the value types an action parameter accepts.
type ParameterType string

const (
	ParameterString  ParameterType = "string"
	ParameterNumber  ParameterType = "number"
	ParameterBoolean ParameterType = "boolean"
	ParameterObject  ParameterType = "object"
	ParameterArray   ParameterType = "array"
	ParameterDate    ParameterType = "date"
)

// ParameterConstraints narrow the accepted values of a parameter beyond its
// type. Min and Max apply to numbers, Pattern to strings, Enum to any type.
// Custom runs last and is never serialized.
type ParameterConstraints struct {
	Min     *float64       `json:"min,omitempty"`
	Max     *float64       `json:"max,omitempty"`
	Pattern string         `json:"pattern,omitempty"`
	Enum    []any          `json:"enum,omitempty"`
	Custom  func(any) bool `json:"-"`
}

// ActionParameter declares one parameter of an action.
type ActionParameter struct {
	Name        string                `json:"name"        validate:"required"`
	Type        ParameterType         `json:"type"        validate:"required,oneof=string number boolean object array date"`
	Required    bool                  `json:"required"`
	Default     any                   `json:"default,omitempty"`
	Description string                `json:"description,omitempty"`
	Constraints *ParameterConstraints `json:"constraints,omitempty"`
}

// ValidationRuleType selects how a ValidationRule is evaluated.
type ValidationRuleType string

const (
	ValidationRequired ValidationRuleType = "required"
	ValidationCustom   ValidationRuleType = "custom"
)

// ValidationRule is an action-level check applied after per-parameter
// validation succeeds.
type ValidationRule struct {
	Field    string             `json:"field"`
	Type     ValidationRuleType `json:"type"`
	Message  string             `json:"message"`
	Validate func(any) bool     `json:"-"`
}

// Action is a registered executable capability. HandlerKey names the handler
// the executor dispatches to; instantiated action ids carry a unique suffix
// and never participate in dispatch.
type Action struct {
	ID                   string            `json:"id"         validate:"required"`
	Name                 string            `json:"name"       validate:"required"`
	Description          string            `json:"description"`
	Category             Category          `json:"category"   validate:"required"`
	Priority             Priority          `json:"priority"`
	RequiredPermission   PermissionLevel   `json:"requiredPermission"`
	RequiresConfirmation bool              `json:"requiresConfirmation"`
	Undoable             bool              `json:"undoable"`
	HandlerKey           string            `json:"handlerKey" validate:"required"`
	KeyboardShortcut     string            `json:"keyboardShortcut,omitempty"`
	Icon                 string            `json:"icon,omitempty"`
	Parameters           []ActionParameter `json:"parameters,omitempty"`
	Validation           []ValidationRule  `json:"validation,omitempty"`
	Tags                 []string          `json:"tags,omitempty"`
	Metadata             map[string]any    `json:"metadata,omitempty"`
}

// Parameter returns the declared parameter with the given name.
func (a *Action) Parameter(name string) (ActionParameter, bool) {
	for _, p := range a.Parameters {
		if p.Name == name {
			return p, true
		}
	}

	return ActionParameter{}, false
}

// HasTag reports whether the action carries the given tag.
func (a *Action) HasTag(tag string) bool {
	for _, t := range a.Tags {
		if t == tag {
			return true
		}
	}

	return false
}
