/*
Package supasheets synchronizes the full contents of a Supabase (PostgREST)
table into a Google Sheets worksheet.

supasheets can be used from the command line but is really intended to be run
from a cron job (or its own 'watch' command) to keep a worksheet up to date
with a remote table. Every run re-fetches the entire table, reshapes it into a
header-plus-rows grid and replaces the worksheet's contents - either by
clearing the live worksheet in place or (by default) by populating a hidden
staging worksheet and swapping it in once the write completes, so that readers
never observe a half-written destination.

supasheets supports the following commands:

  - authorise, to authorise application access to the destination spreadsheet
  - sync, to run one end-to-end refresh of the destination worksheet
  - watch, to run the refresh on a cron schedule until interrupted
  - get, to download the destination worksheet as a TSV file
  - export, to fetch the source table and write it to a local .xlsx workbook
  - revisions, to display the destination spreadsheet's latest revision
*/
package supasheets
