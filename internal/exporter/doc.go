// Package exporter writes fetched data sets and derived analysis to CSV
// files and Excel workbooks. Unknown values export as empty cells, never
// as zeros; a reader must be able to tell "no data" from "0.00".
package exporter
