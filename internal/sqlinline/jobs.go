package sqlinline

// Column order shared by every statement returning a full posting row.
const jobPostingColumns = `id::text, employer_id::text, title, location, job_type, is_remote,
  salary_type, salary_amount::float8, salary_min::float8, salary_max::float8,
  salary_currency, salary_message, application_deadline, description,
  skills, requirements, screening_questions, application_method,
  application_url, application_email, created_at, updated_at`

const QSelectJobPosting = `--sql 186303d3-d873-468d-9e0c-50d51d244430
select ` + jobPostingColumns + `
from job_postings
where id = $1::uuid
limit 1;
`

const QReplaceJobPosting = `--sql 2b044652-c6ae-4637-bf51-0fe77e001488
update job_postings set
  title = $3::text,
  location = $4::text,
  job_type = $5::text,
  is_remote = $6::bool,
  salary_type = $7::text,
  salary_amount = $8::float8,
  salary_min = $9::float8,
  salary_max = $10::float8,
  salary_currency = $11::text,
  salary_message = $12::text,
  application_deadline = $13::timestamptz,
  description = $14::text,
  skills = $15::text[],
  requirements = $16::text[],
  screening_questions = $17::jsonb,
  application_method = $18::text,
  application_url = $19::text,
  application_email = $20::text,
  updated_at = now()
where id = $1::uuid and employer_id = $2::uuid
returning ` + jobPostingColumns + `;
`

const QInsertJobPosting = `--sql c3364f26-0812-4831-8c46-62bde322ca7f
insert into job_postings(
  id, employer_id, title, location, job_type, is_remote,
  salary_type, salary_amount, salary_min, salary_max, salary_currency, salary_message,
  application_deadline, description, skills, requirements, screening_questions,
  application_method, application_url, application_email, created_at, updated_at
) values (
  gen_random_uuid(), $1::uuid, $2::text, $3::text, $4::text, $5::bool,
  $6::text, $7::float8, $8::float8, $9::float8, $10::text, $11::text,
  $12::timestamptz, $13::text, $14::text[], $15::text[], $16::jsonb,
  $17::text, $18::text, $19::text, now(), now()
)
returning ` + jobPostingColumns + `;
`

const QJobPostingOwner = `--sql 1939f85e-eebb-4a77-b488-7f0d02a48b90
select employer_id::text
from job_postings
where id = $1::uuid
limit 1;
`
