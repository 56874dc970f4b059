package schema

// catalog is the full collection catalog loaded by Default(). Adding a
// collection means adding an entry here; no control flow changes anywhere.
var catalog = []CollectionSchema{
	{
		Name:     "user_registration",
		Required: []string{"first_name", "last_name", "email", "mobile", "department", "position", "employee_id"},
		Optional: []string{"location", "address", "blood_group", "emergency_contact"},
		Tier:     TierHR,
	},
	{
		Name:     "user_onboarding",
		Required: []string{"uuid", "permissions", "applications", "system_role"},
		Optional: []string{"locations", "hierarchy_of_employees"},
		Tier:     TierHR,
	},
	{
		Name:     "user_activation",
		Required: []string{"employee_id", "activation_date", "assigned_role"},
		Optional: []string{"remarks", "temporary_password"},
		Tier:     TierHR,
	},
	{
		Name:     "supplier_registration",
		Required: []string{"supplier_name", "supplier_contact", "mobile", "gst_number", "cin_number"},
		Optional: []string{"location", "address", "products", "supplier_rating"},
		Tier:     TierProcurement,
	},
	{
		Name:     "client_registration",
		Required: []string{"client_name", "email", "contact_person", "industry"},
		Optional: []string{"website", "notes"},
		Tier:     TierCustomer,
	},
	{
		Name:     "product_catalog",
		Required: []string{"product_id", "product_name", "category", "price"},
		Optional: []string{"description", "discount", "warranty"},
	},
	{
		Name:     "inventory_management",
		Required: []string{"item_id", "quantity", "warehouse_location"},
		Optional: []string{"expiry_date", "batch_number"},
		Tier:     TierProcurement,
	},
	{
		Name:     "order_placement",
		Required: []string{"order_id", "customer_id", "product_id", "quantity"},
		Optional: []string{"delivery_notes"},
		Derived:  []string{"order_id"},
		Tier:     TierCustomer,
	},
	{
		Name:     "order_tracking",
		Required: []string{"order_id", "current_status", "delivery_date"},
		Optional: []string{"courier_service", "tracking_url"},
		Tier:     TierCustomer,
	},
	{
		Name:     "payment_processing",
		Required: []string{"transaction_id", "order_id", "amount", "payment_method"},
		Optional: []string{"coupon_code", "payment_notes"},
		Derived:  []string{"transaction_id"},
		Tier:     TierFinance,
	},
	{
		Name:     "employee_leave_request",
		Required: []string{"employee_id", "leave_type", "start_date", "end_date"},
		Optional: []string{"reason", "backup_employee"},
		Tier:     TierHR,
	},
	{
		Name:     "payroll_management",
		Required: []string{"employee_id", "salary", "bank_account"},
		Optional: []string{"tax_details", "bonus"},
		Tier:     TierAdmin,
	},
	{
		Name:     "training_registration",
		Required: []string{"employee_id", "training_name", "date"},
		Optional: []string{"feedback_form"},
		Tier:     TierHR,
	},
	{
		Name:     "performance_review",
		Required: []string{"employee_id", "review_period", "reviewer_id", "rating"},
		Optional: []string{"comments", "improvement_plan"},
		Tier:     TierAdmin,
	},
	{
		Name:     "customer_support_ticket",
		Required: []string{"ticket_id", "customer_id", "issue_type", "description"},
		Optional: []string{"priority", "attachments"},
		Derived:  []string{"ticket_id"},
		Tier:     TierCustomer,
	},
	{
		Name:     "project_assignment",
		Required: []string{"project_id", "employee_id", "role", "start_date"},
		Optional: []string{"end_date", "notes"},
	},
	{
		Name:     "meeting_scheduler",
		Required: []string{"meeting_title", "date", "time", "participants"},
		Optional: []string{"agenda", "location"},
	},
	{
		Name:     "it_asset_allocation",
		Required: []string{"asset_id", "employee_id", "allocation_date"},
		Optional: []string{"return_date", "notes"},
	},
	{
		Name:     "compliance_report",
		Required: []string{"report_id", "department", "report_date"},
		Optional: []string{"reviewer_comments"},
		Derived:  []string{"report_id"},
	},
	{
		Name:     "audit_log_viewer",
		Required: []string{"log_id", "timestamp", "action", "user_id"},
		Optional: []string{"ip_address", "device_info"},
		Derived:  []string{"log_id", "timestamp"},
	},
	{
		Name:     "recruitment_portal",
		Required: []string{"candidate_name", "email", "resume", "position_applied"},
		Optional: []string{"referral_source", "notes"},
		Tier:     TierHR,
	},
	{
		Name:     "interview_scheduling",
		Required: []string{"candidate_id", "interviewer_id", "date", "time"},
		Optional: []string{"feedback_form"},
		Tier:     TierHR,
	},
	{
		Name:     "offer_letter_generation",
		Required: []string{"candidate_id", "position", "salary", "joining_date"},
		Optional: []string{"bonus", "special_clauses"},
		Tier:     TierHR,
	},
	{
		Name:     "employee_exit_clearance",
		Required: []string{"employee_id", "last_working_day", "clearance_form"},
		Optional: []string{"feedback", "notes"},
		Tier:     TierAdmin,
	},
	{
		Name:     "travel_request",
		Required: []string{"employee_id", "destination", "start_date", "end_date"},
		Optional: []string{"purpose", "budget"},
	},
	{
		Name:     "expense_reimbursement",
		Required: []string{"employee_id", "expense_type", "amount", "date"},
		Optional: []string{"receipt", "notes"},
		Tier:     TierFinance,
	},
	{
		Name:     "vendor_management",
		Required: []string{"vendor_name", "contact_person", "gst_number"},
		Optional: []string{"products", "address", "rating"},
		Tier:     TierFinance,
	},
	{
		Name:     "invoice_management",
		Required: []string{"invoice_id", "vendor_id", "amount", "due_date"},
		Optional: []string{"notes"},
		Derived:  []string{"invoice_id"},
		Tier:     TierFinance,
	},
	{
		Name:     "shipping_management",
		Required: []string{"shipment_id", "order_id", "carrier", "dispatch_date"},
		Optional: []string{"tracking_url", "delivery_notes"},
		Derived:  []string{"shipment_id"},
		Tier:     TierProcurement,
	},
	{
		Name:     "warehouse_management",
		Required: []string{"warehouse_id", "location", "capacity"},
		Optional: []string{"supervisor", "notes"},
		Tier:     TierProcurement,
	},
	{
		Name:     "purchase_order",
		Required: []string{"po_id", "vendor_id", "product", "quantity"},
		Optional: []string{"notes", "delivery_date"},
		Derived:  []string{"po_id"},
		Tier:     TierProcurement,
	},
	{
		Name:     "contract_management",
		Required: []string{"contract_id", "vendor_id", "start_date", "end_date"},
		Optional: []string{"renewal_terms", "notes"},
		Derived:  []string{"contract_id"},
		Tier:     TierFinance,
	},
	{
		Name:     "knowledge_base",
		Required: []string{"article_id", "title", "content", "category"},
		Optional: []string{"tags", "attachments"},
		Derived:  []string{"article_id"},
	},
	{
		Name:     "faq_management",
		Required: []string{"question", "answer", "category"},
		Optional: []string{"tags"},
	},
	{
		Name:     "system_configuration",
		Required: []string{"config_id", "setting_name", "value"},
		Optional: []string{"notes"},
		Derived:  []string{"config_id"},
		Tier:     TierAdmin,
	},
	{
		Name:     "role_management",
		Required: []string{"role_id", "role_name", "permissions"},
		Optional: []string{"description"},
		Derived:  []string{"role_id"},
		Tier:     TierAdmin,
	},
	{
		Name:     "access_control",
		Required: []string{"user_id", "role_id", "access_level"},
		Optional: []string{"expiry_date"},
		Tier:     TierAdmin,
	},
	{
		Name:     "notification_settings",
		Required: []string{"user_id", "notification_type", "channel"},
		Optional: []string{"frequency"},
	},
	{
		Name:     "chatbot_training_data",
		Required: []string{"intent", "utterance", "response"},
		Optional: []string{"tags"},
	},
	{
		Name:     "attendance_tracking",
		Required: []string{"employee_id", "date", "check_in", "check_out"},
		Optional: []string{"notes", "location"},
		Tier:     TierHR,
	},
	{
		Name:     "shift_scheduling",
		Required: []string{"employee_id", "shift_type", "start_date", "end_date"},
		Optional: []string{"notes"},
		Tier:     TierHR,
	},
	{
		Name:     "health_and_safety_incident_reporting",
		Required: []string{"incident_id", "employee_id", "date", "description"},
		Optional: []string{"attachments", "location"},
		Derived:  []string{"incident_id"},
	},
	{
		Name:     "grievance_management",
		Required: []string{"ticket_id", "employee_id", "description"},
		Optional: []string{"attachments", "priority"},
		Derived:  []string{"ticket_id"},
		Tier:     TierHR,
	},
	{
		Name:     "knowledge_transfer_kt_handover",
		Required: []string{"employee_id", "subject", "handover_to", "date"},
		Optional: []string{"notes", "attachments"},
	},
	{
		Name:     "customer_feedback_management",
		Required: []string{"feedback_id", "customer_id", "rating", "comments"},
		Optional: []string{"attachments", "suggestions"},
		Derived:  []string{"feedback_id"},
		Tier:     TierCustomer,
	},
	{
		Name:     "marketing_campaign_management",
		Required: []string{"campaign_id", "name", "start_date", "end_date", "target_audience"},
		Optional: []string{"budget", "notes"},
		Derived:  []string{"campaign_id"},
	},
	{
		Name:     "data_backup_and_restore",
		Required: []string{"backup_id", "date", "type"},
		Optional: []string{"notes"},
		Derived:  []string{"backup_id"},
		Tier:     TierAdmin,
	},
	{
		Name:     "system_audit_and_compliance_dashboard",
		Required: []string{"dashboard_id", "department", "date"},
		Optional: []string{"reviewer_notes"},
		Derived:  []string{"dashboard_id"},
		Tier:     TierAdmin,
	},
	{
		Name:     "announcements_notice_board",
		Required: []string{"notice_id", "title", "date", "department"},
		Optional: []string{"attachments", "expiry_date"},
		Derived:  []string{"notice_id"},
	},
}
