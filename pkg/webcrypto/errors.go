// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-webcrypto.
//
// go-webcrypto is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package webcrypto

import (
	"fmt"
	"strings"
)

// ErrorKind classifies a validation failure. The set is closed; new kinds
// are only added for family-specific rules.
type ErrorKind int

const (
	// KindValidationFailure is a generic shape error (empty or duplicate usages).
	KindValidationFailure ErrorKind = 1

	// KindWrongAlgorithmName is returned when an algorithm name does not match.
	KindWrongAlgorithmName ErrorKind = 2

	// KindParamRequired is returned when a required parameter is absent.
	KindParamRequired ErrorKind = 3

	// KindParamWrongValue is returned when a parameter holds a disallowed value.
	KindParamWrongValue ErrorKind = 4

	// KindParamWrongType is returned when a parameter has the wrong type.
	KindParamWrongType ErrorKind = 5

	// KindUnsupportedKeyUsage is returned when a requested usage is not
	// in the family's whitelist.
	KindUnsupportedKeyUsage ErrorKind = 6

	// KindDisallowedFormat is returned for an unknown or illegal key format.
	KindDisallowedFormat ErrorKind = 7

	// KindWrongKeyAlgorithm is returned when a key is bound to another algorithm.
	KindWrongKeyAlgorithm ErrorKind = 8

	// KindWrongKeyType is returned when a key is public where private is
	// required, or the reverse.
	KindWrongKeyType ErrorKind = 9

	// KindWrongKeyUsage is returned when a key does not carry the usage the
	// operation needs.
	KindWrongKeyUsage ErrorKind = 10

	// KindKeyRequired is returned for a missing key object.
	KindKeyRequired ErrorKind = 11

	// KindAlgorithmNotSupported is returned when no family validator is
	// registered for an algorithm or operation.
	KindAlgorithmNotSupported ErrorKind = 12
)

// String returns the kind name used in logs and metric labels.
func (k ErrorKind) String() string {
	switch k {
	case KindValidationFailure:
		return "ValidationFailure"
	case KindWrongAlgorithmName:
		return "WrongAlgorithmName"
	case KindParamRequired:
		return "ParamRequired"
	case KindParamWrongValue:
		return "ParamWrongValue"
	case KindParamWrongType:
		return "ParamWrongType"
	case KindUnsupportedKeyUsage:
		return "UnsupportedKeyUsage"
	case KindDisallowedFormat:
		return "DisallowedFormat"
	case KindWrongKeyAlgorithm:
		return "WrongKeyAlgorithm"
	case KindWrongKeyType:
		return "WrongKeyType"
	case KindWrongKeyUsage:
		return "WrongKeyUsage"
	case KindKeyRequired:
		return "KeyRequired"
	case KindAlgorithmNotSupported:
		return "AlgorithmNotSupported"
	default:
		return "Unknown"
	}
}

// Code returns the stable numeric code of the kind.
func (k ErrorKind) Code() int {
	return int(k)
}

// Error is a validation failure. It is built where the check fails and
// returned unchanged to the caller of the verb.
type Error struct {
	Kind    ErrorKind
	Code    int
	Param   string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Is reports whether target is an *Error of the same kind. A target that
// names a parameter only matches errors for that parameter.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Param == "" || strings.EqualFold(t.Param, e.Param)
}

// Sentinels for errors.Is matching by kind.
var (
	ErrValidationFailure     = &Error{Kind: KindValidationFailure, Code: KindValidationFailure.Code(), Message: "webcrypto: validation failure"}
	ErrWrongAlgorithmName    = &Error{Kind: KindWrongAlgorithmName, Code: KindWrongAlgorithmName.Code(), Message: "webcrypto: wrong algorithm name"}
	ErrParamRequired         = &Error{Kind: KindParamRequired, Code: KindParamRequired.Code(), Message: "webcrypto: parameter required"}
	ErrParamWrongValue       = &Error{Kind: KindParamWrongValue, Code: KindParamWrongValue.Code(), Message: "webcrypto: parameter has wrong value"}
	ErrParamWrongType        = &Error{Kind: KindParamWrongType, Code: KindParamWrongType.Code(), Message: "webcrypto: parameter has wrong type"}
	ErrUnsupportedKeyUsage   = &Error{Kind: KindUnsupportedKeyUsage, Code: KindUnsupportedKeyUsage.Code(), Message: "webcrypto: unsupported key usage"}
	ErrDisallowedFormat      = &Error{Kind: KindDisallowedFormat, Code: KindDisallowedFormat.Code(), Message: "webcrypto: disallowed format"}
	ErrWrongKeyAlgorithm     = &Error{Kind: KindWrongKeyAlgorithm, Code: KindWrongKeyAlgorithm.Code(), Message: "webcrypto: wrong key algorithm"}
	ErrWrongKeyType          = &Error{Kind: KindWrongKeyType, Code: KindWrongKeyType.Code(), Message: "webcrypto: wrong key type"}
	ErrWrongKeyUsage         = &Error{Kind: KindWrongKeyUsage, Code: KindWrongKeyUsage.Code(), Message: "webcrypto: wrong key usage"}
	ErrKeyRequired           = &Error{Kind: KindKeyRequired, Code: KindKeyRequired.Code(), Message: "webcrypto: key required"}
	ErrAlgorithmNotSupported = &Error{Kind: KindAlgorithmNotSupported, Code: KindAlgorithmNotSupported.Code(), Message: "webcrypto: algorithm not supported"}
)

func newError(kind ErrorKind, param, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Code:    kind.Code(),
		Param:   param,
		Message: "webcrypto: " + fmt.Sprintf(format, args...),
	}
}

// ValidationFailure reports a shape error that has no more specific kind.
func ValidationFailure(reason string) *Error {
	return newError(KindValidationFailure, "", "%s", reason)
}

// WrongAlgorithmName reports that actual is not the expected algorithm.
func WrongAlgorithmName(actual, expected string) *Error {
	return newError(KindWrongAlgorithmName, "name", "algorithm name '%s' is wrong, should be %s", actual, expected)
}

// ParamRequired reports a missing parameter.
func ParamRequired(param string) *Error {
	return newError(KindParamRequired, param, "parameter '%s' is required", param)
}

// ParamWrongValue reports a parameter outside its allowed values.
func ParamWrongValue(param, expected string) *Error {
	return newError(KindParamWrongValue, param, "parameter '%s' has wrong value, should be %s", param, expected)
}

// ParamWrongType reports a parameter of the wrong type.
func ParamWrongType(param, expectedType string) *Error {
	return newError(KindParamWrongType, param, "parameter '%s' has wrong type, should be %s", param, expectedType)
}

// UnsupportedKeyUsage reports a requested usage outside allowed.
func UnsupportedKeyUsage(usage string, allowed []KeyUsage) *Error {
	return newError(KindUnsupportedKeyUsage, "usages", "unsupported key usage '%s', should be one of [%s]", usage, joinUsages(allowed))
}

// DisallowedFormat reports a key format that may not be used here.
func DisallowedFormat(format string, allowed []KeyFormat) *Error {
	return newError(KindDisallowedFormat, "format", "format '%s' is not allowed, should be one of [%s]", format, joinFormats(allowed))
}

// WrongKeyAlgorithm reports a key bound to a different algorithm.
func WrongKeyAlgorithm(actual, expected string) *Error {
	return newError(KindWrongKeyAlgorithm, "key", "key algorithm '%s' does not match '%s'", actual, expected)
}

// WrongKeyType reports a key of the wrong type.
func WrongKeyType(actual, expected KeyType) *Error {
	return newError(KindWrongKeyType, "key", "key type '%s' is wrong, should be '%s'", actual, expected)
}

// WrongKeyUsage reports a key that lacks the usage an operation needs.
func WrongKeyUsage(usage KeyUsage) *Error {
	return newError(KindWrongKeyUsage, "key", "key does not support the '%s' operation", usage)
}

// KeyRequired reports a nil key object.
func KeyRequired(param string) *Error {
	return newError(KindKeyRequired, param, "key '%s' is required", param)
}

// AlgorithmNotSupported reports a name with no registered validator.
func AlgorithmNotSupported(name string) *Error {
	return newError(KindAlgorithmNotSupported, "name", "algorithm '%s' is not supported", name)
}

// OperationNotSupported reports a verb the resolved family does not offer,
// such as encrypt on a signature algorithm.
func OperationNotSupported(op Operation, name AlgorithmName) *Error {
	return newError(KindAlgorithmNotSupported, "operation", "operation '%s' is not supported by %s", op, name)
}

func joinUsages(usages []KeyUsage) string {
	s := make([]string, len(usages))
	for i, u := range usages {
		s[i] = string(u)
	}
	return strings.Join(s, ", ")
}

func joinFormats(formats []KeyFormat) string {
	s := make([]string, len(formats))
	for i, f := range formats {
		s[i] = string(f)
	}
	return strings.Join(s, ", ")
}
