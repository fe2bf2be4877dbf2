package sqlinline

const QInsertUsageLog = `--sql 071fad6f-e3bd-4e4f-86d3-e64786aa9c37
insert into usage_logs (id, user_id, tool_name, file_size, success, error_message, country, created_at)
values (gen_random_uuid(), $1::uuid, $2::text, $3::bigint, $4::boolean, nullif($5::text, ''), nullif($6::text, ''), now());
`

const QListUsageByUser = `--sql ce852958-dd89-4fc2-8cea-3996e99f8262
select id, tool_name, file_size, success, coalesce(error_message, ''), coalesce(country, ''), created_at
from usage_logs
where user_id = $1::uuid
order by created_at desc
limit $2::int;
`

const QDeleteUsageOlderThan = `--sql b1bded2e-bd39-4036-a1cd-f294d9281cc8
delete from usage_logs
where created_at < now() - ($1::int * interval '1 day');
`
