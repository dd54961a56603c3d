// Package config loads the fabric's Config from a YAML file in Warren's
// cmd/warren/apply.go style (gopkg.in/yaml.v3, a single Unmarshal into a
// plain struct), then lets individual fields be overridden by environment
// variables following the INTELLIROUTER_<SECTION>_<FIELD> convention —
// simplified from the secret-manager-aware override helper in
// r3e-network-service_layer's infrastructure/config, since the fabric has
// no secret manager to plumb through.
package config
