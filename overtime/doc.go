/*
Package overtime holds the pay rules for overtime work.

Everything here is pure: callers pass the schedule, the rate table and the
record set in, and get numbers, groups and typed errors back. Nothing reads
the clock, the database or package-level settings.

Data flow:

	records -> Accept (on insert/edit)
	records -> GroupByDay -> NetDuration per record -> summed per day -> DailyPay per day

Pay is tiered over the whole day, so the aggregator always prices the summed
net hours of a day once instead of pricing each record on its own.
*/
package overtime
