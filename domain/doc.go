// Package domain holds the failure kinds shared by every stage of a run.
package domain
