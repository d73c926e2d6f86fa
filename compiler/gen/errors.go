package gen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kapok-dev/kapok"
)

// Sentinel errors for the generation failure taxonomy.
var (
	// ErrInvalidShape indicates a declaration that is not a fakeable shape.
	ErrInvalidShape = errors.New("kapok: invalid contract shape")
	// ErrEmptyContract indicates a contract with no members to fake.
	ErrEmptyContract = errors.New("kapok: empty contract")
	// ErrUnsupportedSignature indicates a member the engine cannot represent.
	ErrUnsupportedSignature = errors.New("kapok: unsupported member signature")
	// ErrMissingDependency indicates an auto-wire reference to an unknown contract.
	ErrMissingDependency = errors.New("kapok: missing dependency")
	// ErrCircularDependency indicates an auto-wire reference cycle.
	ErrCircularDependency = errors.New("kapok: circular dependency")
)

// ShapeError reports a declaration whose shape cannot be faked: a concrete
// leaf class, an object singleton, or a sealed, local or external type.
type ShapeError struct {
	Contract string // qualified contract name
	Kind     string // offending declaration kind
	Message  string
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	var b strings.Builder
	b.WriteString("kapok: invalid contract shape")
	if e.Contract != "" {
		b.WriteString(" for ")
		b.WriteString(e.Contract)
	}
	if e.Kind != "" {
		fmt.Fprintf(&b, " (%s)", e.Kind)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error for ShapeError.
func (e *ShapeError) Is(target error) bool {
	return target == ErrInvalidShape
}

// Diagnostic converts the error to a structured diagnostic.
func (e *ShapeError) Diagnostic() kapok.Diagnostic {
	return kapok.Diagnostic{
		Severity: kapok.SeverityError,
		Contract: e.Contract,
		Message:  e.Error(),
		Fixes: []kapok.SuggestedFix{
			{Message: "declare the contract as an interface or an open/abstract class"},
		},
	}
}

// NewShapeError creates a new ShapeError.
func NewShapeError(contract, kind, message string) *ShapeError {
	return &ShapeError{Contract: contract, Kind: kind, Message: message}
}

// EmptyContractError reports a contract with zero methods and properties.
// Whether it is surfaced as a warning or an error depends on configuration.
type EmptyContractError struct {
	Contract string
}

// Error implements the error interface.
func (e *EmptyContractError) Error() string {
	return fmt.Sprintf("kapok: empty contract %s: no members to fake", e.Contract)
}

// Is reports whether the target matches the sentinel error for EmptyContractError.
func (e *EmptyContractError) Is(target error) bool {
	return target == ErrEmptyContract
}

// Diagnostic converts the error to a structured diagnostic with the
// given severity.
func (e *EmptyContractError) Diagnostic(severity kapok.Severity) kapok.Diagnostic {
	return kapok.Diagnostic{
		Severity: severity,
		Contract: e.Contract,
		Message:  e.Error(),
		Fixes: []kapok.SuggestedFix{
			{Message: "add at least one method or property, or drop the fake marker"},
		},
	}
}

// NewEmptyContractError creates a new EmptyContractError.
func NewEmptyContractError(contract string) *EmptyContractError {
	return &EmptyContractError{Contract: contract}
}

// SignatureError reports a member whose type shape exceeds what the
// default-value resolver or the code model can represent.
type SignatureError struct {
	Contract string
	Member   string
	Message  string
}

// Error implements the error interface.
func (e *SignatureError) Error() string {
	var b strings.Builder
	b.WriteString("kapok: unsupported member signature")
	if e.Contract != "" {
		b.WriteString(" on ")
		b.WriteString(e.Contract)
	}
	if e.Member != "" {
		b.WriteString(" member ")
		b.WriteString(e.Member)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error for SignatureError.
func (e *SignatureError) Is(target error) bool {
	return target == ErrUnsupportedSignature
}

// Diagnostic converts the error to a structured diagnostic.
func (e *SignatureError) Diagnostic() kapok.Diagnostic {
	return kapok.Diagnostic{
		Severity: kapok.SeverityError,
		Contract: e.Contract,
		Member:   e.Member,
		Message:  e.Error(),
	}
}

// NewSignatureError creates a new SignatureError.
func NewSignatureError(contract, member, message string) *SignatureError {
	return &SignatureError{Contract: contract, Member: member, Message: message}
}

// DependencyError reports a broken auto-wire reference between generated
// contracts: either a reference to a contract that does not exist, or a
// reference chain that forms a cycle.
type DependencyError struct {
	Contract string
	// Chain holds the full reference chain. For cycles, the first and
	// last element are the same contract.
	Chain    []string
	Missing  string // the unknown contract, for missing references
	Circular bool
}

// Error implements the error interface.
func (e *DependencyError) Error() string {
	var b strings.Builder
	if e.Circular {
		b.WriteString("kapok: circular dependency")
	} else {
		b.WriteString("kapok: missing dependency")
	}
	if e.Contract != "" {
		b.WriteString(" on ")
		b.WriteString(e.Contract)
	}
	if e.Missing != "" {
		fmt.Fprintf(&b, ": %q is not marked for fake generation", e.Missing)
	}
	if len(e.Chain) > 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(e.Chain, " -> "))
		b.WriteString(")")
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error for DependencyError.
func (e *DependencyError) Is(target error) bool {
	if e.Circular {
		return target == ErrCircularDependency
	}
	return target == ErrMissingDependency
}

// Diagnostic converts the error to a structured diagnostic.
func (e *DependencyError) Diagnostic() kapok.Diagnostic {
	fix := kapok.SuggestedFix{Message: "mark the referenced contract for fake generation or remove the reference"}
	if e.Circular {
		fix = kapok.SuggestedFix{Message: "break the cycle by configuring one of the fakes explicitly instead of auto-wiring it"}
	}
	return kapok.Diagnostic{
		Severity: kapok.SeverityError,
		Contract: e.Contract,
		Message:  e.Error(),
		Fixes:    []kapok.SuggestedFix{fix},
	}
}

// IsShapeError reports whether the error is a ShapeError.
func IsShapeError(err error) bool {
	var shapeErr *ShapeError
	return errors.As(err, &shapeErr)
}

// IsEmptyContractError reports whether the error is an EmptyContractError.
func IsEmptyContractError(err error) bool {
	var emptyErr *EmptyContractError
	return errors.As(err, &emptyErr)
}

// IsSignatureError reports whether the error is a SignatureError.
func IsSignatureError(err error) bool {
	var sigErr *SignatureError
	return errors.As(err, &sigErr)
}

// IsDependencyError reports whether the error is a DependencyError.
func IsDependencyError(err error) bool {
	var depErr *DependencyError
	return errors.As(err, &depErr)
}
