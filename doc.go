// Package morphe models database schemas as a dialect-neutral typed graph
// and provides three coupled operations on it: ingesting source model
// definitions (Prisma, Mongoose, Sequelize) into the canonical graph,
// converting the graph into another database dialect's DDL, and computing
// a structural diff between two graph snapshots.
//
// The root package carries the shared error taxonomy. The actual work
// lives in the sub-packages:
//
//   - schema: the canonical model (entities, attributes, relationships)
//     and its validator
//   - schema/diff: the structural diff engine
//   - ingest: dialect detection, per-dialect parsers and multi-file merge
//   - dialect: supported conversion dialect tags and normalization
//   - dialect/convert: type-mapping tables and the conversion engine
//   - assist: the external generative collaborator boundary
//
// All components are pure, synchronous pipelines over immutable models;
// the only blocking operation is the one-shot collaborator call made by
// the conversion engine, which degrades to the deterministic mapping path
// on any failure.
package morphe
