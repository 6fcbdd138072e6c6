// Package types defines the Contact entity, the field enumeration, the
// configuration record and the standard error taxonomy shared by the
// address book packages.
package types
