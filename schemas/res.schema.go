// Package schemas contains the shapes that are sent to and received from the clients
package schemas

// Res is the envelope of every response
type Res struct {
	Data    interface{} `json:"data,omitempty"`
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
}
