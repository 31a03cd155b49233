package domain

import "go.trai.ch/zerr"

var (
	// ErrNodeAlreadyExists is returned when adding a node whose id is already in the graph.
	ErrNodeAlreadyExists = zerr.New("node already exists")

	// ErrNodeNotFound is returned when a node id does not resolve to a graph node.
	ErrNodeNotFound = zerr.New("node not found")

	// ErrKindNotRegistered is returned when a node references a kind with no registered stages.
	ErrKindNotRegistered = zerr.New("node kind not registered")

	// ErrCycleDetected is returned when the connection graph contains a cycle.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrResourceUnavailable is returned when an external resource is missing or unreadable.
	ErrResourceUnavailable = zerr.New("resource unavailable")

	// ErrStageFailed is returned when a stage computation fails for a domain reason.
	ErrStageFailed = zerr.New("stage computation failed")

	// ErrPortOutOfRange is returned when a connection references a port a node does not have.
	ErrPortOutOfRange = zerr.New("port out of range")

	// ErrNoTargetsSpecified is returned when an evaluation run is requested without targets.
	ErrNoTargetsSpecified = zerr.New("no targets specified")
)
