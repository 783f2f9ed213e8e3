package catalog

import "fmt"

// FetchError reports a category or kaomoji payload that could not be fetched
// or decoded.
type FetchError struct {
	Category string
	Locator  string
	Err      error
}

func (e *FetchError) Error() string {
	name := e.Category
	if name == "" {
		name = e.Locator
	}
	if e.Err == nil {
		return fmt.Sprintf("fetch %s failed", name)
	}
	return fmt.Sprintf("fetch %s: %v", name, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
