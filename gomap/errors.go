package gomap

import "fmt"

// MarshalError represents an error converting a Go value to a tree.
type MarshalError struct {
	FieldPath string // Field path (e.g., "doc.tags[2]")
	Message   string
	Err       error
}

func (e *MarshalError) Error() string {
	if e.FieldPath != "" {
		return fmt.Sprintf("marshal error at %s: %s", e.FieldPath, e.Message)
	}
	return fmt.Sprintf("marshal error: %s", e.Message)
}

func (e *MarshalError) Unwrap() error {
	return e.Err
}

// UnmarshalError represents an error filling a Go value from a tree.
type UnmarshalError struct {
	FieldPath string
	Message   string
	Err       error
}

func (e *UnmarshalError) Error() string {
	if e.FieldPath != "" {
		return fmt.Sprintf("unmarshal error at %s: %s", e.FieldPath, e.Message)
	}
	return fmt.Sprintf("unmarshal error: %s", e.Message)
}

func (e *UnmarshalError) Unwrap() error {
	return e.Err
}

func fieldPathOf(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

func indexPathOf(parent string, i int) string {
	return fmt.Sprintf("%s[%d]", parent, i)
}
