// Package sim provides the core sequential-decision simulation model for a
// car dealership's inventory.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - state.go: State, Decision and ExogenousInfo value types
//   - model.go: Model lifecycle (Reset, Step, Clone) and decision validation
//   - exog.go, transition.go, objective.go: the three step functions
//   - config.go, market.go, errors.go: parameters, the market-trend
//     reference and the error taxonomy
//
// # Step Contract
//
// One Step validates the decision against the current state, realises the
// exogenous information from the model's RandomStream, computes the profit
// against the pre-transition state, then replaces the state with a freshly
// built one. States are never modified after construction.
//
// # Architecture
//
// Implementations that build on the kernel live in sub-packages:
//   - sim/policy/: decision policies (order-up-to variants)
//   - sim/runner/: Monte Carlo evaluation of a policy
//   - sim/trace/: per-step decision records and summaries
//   - sim/dataset/: CSV loaders for the initial state and market trends
package sim
