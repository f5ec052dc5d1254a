package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// Version suffix enables future algorithm migration.
const (
	DomainDefinition = "facet/definition/v1"
	DomainEvent      = "facet/event/v1"
)

// hashWithDomain computes SHA-256 with domain separation:
// SHA256(domain + 0x00 + data).
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// DefinitionHash computes a stable identity for a component definition.
// Two definitions with the same name and canonical body hash identically,
// regardless of map iteration order.
func DefinitionHash(name string, body Object) (string, error) {
	canonical, err := MarshalCanonical(Object{
		"name": String(name),
		"body": body,
	})
	if err != nil {
		return "", fmt.Errorf("DefinitionHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainDefinition, canonical), nil
}

// EventID computes the content-addressed ID of a timeline event.
func EventID(ev TimelineEvent) (string, error) {
	canonical, err := MarshalCanonical(Object{
		"seq":       Int(ev.Seq),
		"kind":      String(ev.Kind),
		"component": String(ev.ComponentUID),
		"name":      String(ev.Name),
		"payload":   ev.payloadOrEmpty(),
	})
	if err != nil {
		return "", fmt.Errorf("EventID: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainEvent, canonical), nil
}

// MustDefinitionHash is like DefinitionHash but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustDefinitionHash(name string, body Object) string {
	h, err := DefinitionHash(name, body)
	if err != nil {
		panic(err)
	}
	return h
}
