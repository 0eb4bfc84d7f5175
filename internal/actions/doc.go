// Package actions registers named actions and dispatches them through a fixed
// set of severities.
//
// A Dispatcher owns an action Store and a CallbackRegistry. Invoking a name
// resolves it to a bare severity, a registered action, or the UNDEFINED
// severity, runs the action method with panic and error isolation, notifies
// the callback registered for the effective severity and finally emits the
// formatted message through an Output. The ERROR severity is the only one that
// fails: its output primitive returns a *FatalError that Run propagates.
package actions
