// Package main provides the entry point of pdns-rrset.
// It adds, replaces and removes RRsets of PowerDNS zones from the command
// line or through a small JSON API served by fiber, writes every change to a
// gorm change journal and exposes prometheus metrics.
package main
