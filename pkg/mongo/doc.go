// Package mongo manages the MongoDB connection used by the durable
// credential store. Configuration is environment-driven and the connector
// retries before surfacing a failure so the caller can decide whether to
// fall back to the in-memory store.
package mongo
