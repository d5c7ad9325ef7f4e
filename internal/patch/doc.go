// Package patch applies RFC 6902 JSON Patch documents to persisted aggregates.
//
// A resource is never patched directly. It is projected into an acyclic update
// bean, the document is applied to the bean's JSON form, and the patched bean
// is written back onto the live entity (owned collections go through
// Reconcile). Pipeline composes those steps around load and save.
//
// Failures carry the aggregates error codes: CodePatchRejected for anything
// the caller controls, CodeInternal for bean (de)serialization faults. A
// document made only of test operations is not an error; it reports
// changed=false and never reaches persistence.
package patch
