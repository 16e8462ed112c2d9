package service

// Validator checks creation data against its struct tags and reports
// rejected fields as *errors.ValidationError.
type Validator interface {
	Struct(s any) error
}
