// Package checks holds the storage and database checks run by the integrity feature.
//
//   - CheckBucket / FixBucket: compare the published sitemap objects with the
//     configured sitemaps, create a missing bucket and remove orphaned objects.
//   - CheckSchema: compare a table with the GORM model it stores.
package checks
