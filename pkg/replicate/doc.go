// Package replicate provides types, interfaces, and helpers for working with
// the Replicate HTTP API.
//
// # Overview
//
// The replicate package defines the domain types (Model, ModelVersion,
// Prediction, Training, Deployment, Hardware) and the interfaces for
// resource-oriented clients (ModelsClient, PredictionsClient, ...). A
// concrete implementation of these clients is provided by the
// replicateclient package, which wires configuration, transport, and
// authentication. Most consumers should import replicateclient to construct
// a client and then interact with the resource client interfaces exposed
// here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/replicate-client/pkg/replicate"
//	  "github.com/fivetwenty-io/replicate-client/pkg/replicateclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := replicateclient.NewWithToken("r8_...")
//	  if err != nil { log.Fatal(err) }
//
//	  model, err := cli.Models().Get(ctx, "stability-ai", "sdxl")
//	  if err != nil { log.Fatal(err) }
//	  _ = model
//	}
//
// # References
//
// Operations that take a model or deployment accept loosely-typed references:
// a raw "owner/name" string (ModelName, DeploymentName) or a typed handle
// (*Model, *Deployment). References are resolved once into a canonical path;
// see ModelRef and DeploymentRef.
//
// # Pagination
//
// List endpoints are cursor-paginated. Each resource client exposes List for
// one page and All for a lazy PageIterator:
//
//	it := cli.Models().All(ctx)
//	for it.HasNext() {
//	  model, err := it.Next()
//	  if err != nil { break }
//	  _ = model
//	}
//
// Iteration walks the collection in server order, one page at a time, and
// aborts on the first page error.
//
// # Errors
//
// Non-2xx responses are represented by APIError. Helpers IsNotFound,
// IsUnauthorized, IsForbidden, and IsServerError make it easy to branch on
// the common cases. Find variants of lookups absorb not-found into a nil
// result; every other call path propagates the error unchanged.
package replicate
