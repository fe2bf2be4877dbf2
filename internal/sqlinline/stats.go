package sqlinline

const QStatsSummary = `--sql 05cb93b5-0088-453a-86fb-975b92d18aec
select
    (select count(*) from profiles) as total_users,
    (select count(*) from usage_logs where success) as operations_succeeded,
    (select count(*) from usage_logs where not success) as operations_failed,
    (select count(*) from usage_logs where created_at > now() - interval '24 hours') as operations_last_24h,
    (select coalesce(sum(credits_used), 0) from profiles) as credits_consumed;
`

const QStatsTopTools = `--sql 4e2d9e2c-f1f4-4aa2-b3dd-a8d22ab47069
select tool_name, count(*) as invocations
from usage_logs
where created_at > now() - ($1::int * interval '1 day')
group by tool_name
order by invocations desc
limit $2::int;
`
