// Package domain contains the core entities shared across the service:
// customers, scanned emails, extracted domain occurrences and report
// payloads. These types are intentionally free of transport and storage
// concerns so every layer can depend on them.
package domain
