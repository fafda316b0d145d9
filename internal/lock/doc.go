// Package lock pins every project of a floating manifest to the commit that is
// currently checked out in the local workspace and publishes the locked
// manifest. A run either locks every project or writes nothing.
package lock
