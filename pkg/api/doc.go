// Package api defines the request and response messages of the dinelink.v1
// RPC services. Messages travel as JSON; money is a decimal string such as
// "90.00" so no precision is lost in transit.
package api
