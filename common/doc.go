// Package common contains shared helpers used by all CTI contracts.
package common
