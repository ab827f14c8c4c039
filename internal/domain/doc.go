// Package domain holds the shared types, tag sets and error taxonomy.
// No implementation code beyond small validation helpers.
package domain
