// Package peerfunds reconciles the spreadsheets of a peer funds tracking workflow.
//
// Deal-flow exports list companies with their latest funding events. The team keeps a
// registry of tracked companies, the Peer Funds table, and regularly needs to:
//   - Compare: find the companies of a new export that are missing from the registry,
//     or whose registry entry is stale compared to the export.
//   - Merge: normalize two differently shaped exports into one table, keeping the
//     first occurrence of each company.
//   - Generate: project the merged export into the canonical Peer Funds schema,
//     back-fill descriptions from a profiles table, and tag the tracked investors.
//   - Find missing: list the profiles of companies absent from the exports.
//
// Every operation is a pure function of in-memory tables, a Config, and, when a date
// is stamped, an explicit "today". Spreadsheet I/O is done by Decode and Encode.
//
// This package serves as the foundational logic for the `pft` command-line tool and
// its web front-end.
package peerfunds
