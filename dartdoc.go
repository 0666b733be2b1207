// Package dartdoc extracts structured content from corporate filings and
// queries it. Filings are parsed into a tree of titled sections holding
// paragraphs and tables; the tree can be searched recursively with
// ancestor selection and its tables addressed spreadsheet style.
//
// This package contains domain types, interfaces and the dependency-free
// query algorithms, following Ben Johnson's Standard Package Layout.
// Implementations live in subdirectories named after their primary
// dependency (e.g., html/, goquery/, sqlite/, excelize/).
package dartdoc
