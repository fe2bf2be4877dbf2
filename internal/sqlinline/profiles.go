package sqlinline

const QUpsertGoogleProfile = `--sql e3fad22e-b31e-44ad-ab7c-0cd67ae7605f
insert into profiles (id, email, full_name, plan_type, credits_remaining, credits_used, credits_reset_at, created_at, updated_at)
values (gen_random_uuid(), $1::text, $2::text, 'free', $3::int, 0, now() + interval '30 days', now(), now())
on conflict (email) do update set
    full_name = excluded.full_name,
    updated_at = now()
returning id, email, full_name, plan_type, credits_remaining, credits_used, credits_reset_at, coalesce(subscription_id, ''), created_at, updated_at;
`

const QSelectProfileByID = `--sql c4ea6c33-6af3-4267-8801-3b327a51b876
select id, email, full_name, plan_type, credits_remaining, credits_used, credits_reset_at, coalesce(subscription_id, ''), created_at, updated_at
from profiles
where id = $1::uuid
limit 1;
`

const QSelectProfileByEmail = `--sql 9a308cf9-58e8-407d-aa6b-2bdcbcc742a2
select id, email, full_name, plan_type, credits_remaining, credits_used, credits_reset_at, coalesce(subscription_id, ''), created_at, updated_at
from profiles
where email = $1::text
limit 1;
`

// QConsumeCredit is the authoritative accounting step. The conditional update
// keeps credits_remaining non-negative even when two invocations race; a zero
// row count means the balance was already exhausted.
const QConsumeCredit = `--sql 5d9c8d11-d988-45d5-a5ce-b70376af092f
update profiles
set credits_remaining = credits_remaining - 1,
    credits_used = credits_used + 1,
    updated_at = now()
where id = $1::uuid
  and plan_type <> 'enterprise'
  and credits_remaining > 0
returning credits_remaining, credits_used;
`

const QSetPlan = `--sql f77a3acb-7d5e-4b73-a3d8-87123e3c85cd
update profiles
set plan_type = $2::text,
    credits_remaining = case when $3::int >= 0 then $3::int else credits_remaining end,
    credits_reset_at = now() + interval '30 days',
    updated_at = now()
where id = $1::uuid
returning id, plan_type, credits_remaining, credits_used;
`

const QRefillDueCredits = `--sql d598d7f8-bba2-431b-8925-9efca68af8a2
update profiles
set credits_remaining = $2::int,
    credits_reset_at = now() + interval '30 days',
    updated_at = now()
where plan_type = $1::text
  and credits_reset_at <= now();
`
