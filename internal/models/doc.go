// Package models defines the core domain models for ChoreHub.
//
// # Entities
//
//   - User: a registered account, identified by a unique username
//   - Group: a household of users sharing events and costs
//   - Event: a scheduled activity in a group, optionally recurring
//   - EventOccurrence: one concrete instance of an event
//   - Cost: one payer-to-borrower monetary obligation
//   - RecurringCost: a template that generates batches of Cost rows
//
// # Design Principles
//
// 1. **Flat references**: relationships are ID strings, not pointers,
// to avoid circular references between models
//
// 2. **Decimal money**: amounts use shopspring/decimal so splits round
// predictably instead of accumulating binary float error in storage
//
// 3. **One row per share**: a cost split among N borrowers is stored as
// N Cost rows sharing a transaction ID, so every share can be settled
// independently without a parallel share table
package models
