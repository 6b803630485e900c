package model

// Decorator enriches a form schema after the classified structure has been
// built, before it is cached and returned.
type Decorator interface {
	Decorate(*FormSchema) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*FormSchema) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(schema *FormSchema) error {
	return fn(schema)
}
