// Package services contains the core business logic of knowledge-rag.
// Services implement the driving ports and depend only on driven ports,
// keeping the indexing and query pipelines independent of the storage
// and embedding adapters behind them.
package services
