package contract

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"
)

// Version of the contract. It is part of every path and is sent by the client
// in the VersionHeader so the server can refuse mismatched callers.
const Version = "v1"

// BasePath prefixes every endpoint path.
const BasePath = "/api/" + Version

// VersionHeader carries Version on every client request.
const VersionHeader = "X-Contract-Version"

// SessionCookie names the cookie that carries the caller's session token.
const SessionCookie = "admin_session"

// Empty is the input of operations that take no arguments.
type Empty struct{}

// Endpoint declares one remote operation.
type Endpoint[In, Out any] struct {
	Resource  string // "" for the root resource
	Operation string
	Method    string
	Path      string // relative to BasePath
	Public    bool   // callable without a session
	Roles     []string
}

// Name is the dotted operation name, e.g. "auth.login".
func (e Endpoint[In, Out]) Name() string {
	if e.Resource == "" {
		return e.Operation
	}
	return e.Resource + "." + e.Operation
}

// Descriptor returns the untyped view of the endpoint.
func (e Endpoint[In, Out]) Descriptor() Descriptor {
	return Descriptor{
		Name:   e.Name(),
		Method: e.Method,
		Path:   e.Path,
		Public: e.Public,
		Roles:  append([]string(nil), e.Roles...),
		Input:  reflect.TypeOf((*In)(nil)).Elem(),
		Output: reflect.TypeOf((*Out)(nil)).Elem(),
	}
}

// Descriptor is the immutable, type-erased declaration of an endpoint.
type Descriptor struct {
	Name   string
	Method string
	Path   string
	Public bool
	Roles  []string
	Input  reflect.Type
	Output reflect.Type
}

func (d Descriptor) String() string {
	return fmt.Sprintf("%s %s%s (%s) -> %s", d.Method, BasePath, d.Path, d.Input, d.Output)
}

// Resource groups the create and list operations of a creatable, listable
// collection.
type Resource[CreateIn, CreateOut, ListOut any] struct {
	Create Endpoint[CreateIn, CreateOut]
	List   Endpoint[Empty, ListOut]
}

// ListResource is a read-only collection.
type ListResource[ListOut any] struct {
	List Endpoint[Empty, ListOut]
}

// Validate checks the structural rules every declared endpoint must follow.
func Validate(ds []Descriptor) error {
	names := make(map[string]bool, len(ds))
	routes := make(map[string]bool, len(ds))
	emptyType := reflect.TypeOf((*Empty)(nil)).Elem()
	for _, d := range ds {
		if d.Operation() == "" {
			return fmt.Errorf("contract: endpoint with empty name")
		}
		if names[d.Name] {
			return fmt.Errorf("contract: duplicate endpoint name %q", d.Name)
		}
		names[d.Name] = true

		switch d.Method {
		case http.MethodGet, http.MethodPost:
		default:
			return fmt.Errorf("contract: %s uses unsupported method %q", d.Name, d.Method)
		}
		if !strings.HasPrefix(d.Path, "/") {
			return fmt.Errorf("contract: %s path %q must start with /", d.Name, d.Path)
		}
		route := d.Method + " " + d.Path
		if routes[route] {
			return fmt.Errorf("contract: duplicate route %q", route)
		}
		routes[route] = true

		if d.Method == http.MethodGet && d.Input != emptyType {
			return fmt.Errorf("contract: GET endpoint %s must take Empty input", d.Name)
		}
		if d.Input.Kind() != reflect.Struct || d.Output.Kind() != reflect.Struct {
			return fmt.Errorf("contract: %s input and output must be structs", d.Name)
		}
		if d.Public && len(d.Roles) > 0 {
			return fmt.Errorf("contract: public endpoint %s cannot require roles", d.Name)
		}
	}
	return nil
}

// Operation is the part of the name after the resource.
func (d Descriptor) Operation() string {
	if i := strings.LastIndexByte(d.Name, '.'); i >= 0 {
		return d.Name[i+1:]
	}
	return d.Name
}
