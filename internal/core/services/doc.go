// Package services implements the core engine behind the driving ports:
// chunk splitting, ingestion, querying, answer synthesis and index
// administration.
package services
