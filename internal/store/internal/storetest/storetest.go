// Package storetest provides a trivial msgp-encodable type for store tests.
package storetest

//go:generate go tool github.com/tinylib/msgp -io=false

type TestObj struct {
	Value string
}
