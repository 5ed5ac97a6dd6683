// Package conversation implements the session protocol of the agent.
//
// A Session owns a conversation history seeded with the persona's
// system turn. Each user turn retrieves evidence through the retrieval
// pipeline, then either answers directly from a single exact-matching
// document or streams a grounded reply from the chat model. Failures
// never surface raw errors to the user: retrieval failures produce a
// fixed degraded reply, generation failures a fixed fallback reply, and
// in both cases the history is left untouched.
//
// Sessions are not safe for concurrent use. Turns are strictly
// sequential.
package conversation
