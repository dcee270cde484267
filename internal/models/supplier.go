// internal/models/supplier.go
package models

// Supplier is a farmer registered in the directory. Product is the offering
// the farmer grows; Email is where notifications are delivered.
type Supplier struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Product string `json:"product"`
}

// Contact is the public view of a notified supplier.
type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (s Supplier) Contact() Contact {
	return Contact{Name: s.Name, Email: s.Email}
}
