/*
Package ddns keeps the A records of a set of domains pointed at the current public IPv4 address.

Usage will always start with [ddns.New],
which validates the domain names and returns a [Client].
New requires a [Provider], which lists hosted zones and upserts records;
[UsingRoute53] registers Amazon Route 53.
Each domain is matched to the hosted zone with the longest suffix on a label boundary
(see [MatchZone]) and only domains whose published IP is stale are written.

Call [Client.RunOnce] for a single pass or [Client.RunDaemon] to keep the records in sync.
*/
package ddns
