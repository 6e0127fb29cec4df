package domain

import "fmt"

// FieldError is a single validation message bound to a request field.
type FieldError struct {
	PropertyName string
	Message      string
}

// ValidationFailed reports malformed caller input. Storage is never touched
// when a handler returns it.
type ValidationFailed struct {
	Errors []FieldError
}

// RecordNotFound reports that the targeted entity does not exist.
type RecordNotFound struct {
	Messages []string
}

// HttpClientCommunicationFailed reports that the exchange rate provider could
// not be reached or rejected the request.
type HttpClientCommunicationFailed struct {
	Messages []string
}

// ProductNotFound builds the RecordNotFound used by product handlers.
func ProductNotFound(id string) RecordNotFound {
	return RecordNotFound{Messages: []string{fmt.Sprintf("Product with Id %s not found.", id)}}
}

// CommunicationFailed builds an HttpClientCommunicationFailed with one message.
func CommunicationFailed(msg string) HttpClientCommunicationFailed {
	return HttpClientCommunicationFailed{Messages: []string{msg}}
}
