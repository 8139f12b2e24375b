// Package types defines the contact-book entity model: Person, ContactGroup,
// Address, PhoneField, CustomField, the sealed Entity union over them, and
// the standard errors shared by the storage and facade layers.
package types
