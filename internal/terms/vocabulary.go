package terms

// Category classifies a ranked term.
type Category string

const (
	CategorySkill         Category = "skill"
	CategoryTool          Category = "tool"
	CategoryQualification Category = "qualification"
	CategorySoft          Category = "soft"
)

// vocabulary maps known terms and phrases to their category. Tokens not
// found here default to CategorySoft. Phrases (entries containing a space)
// are matched before single-token extraction so "machine learning" ranks as
// one term.
var vocabulary = map[string]Category{
	// Languages and core techniques.
	"python":                 CategorySkill,
	"java":                   CategorySkill,
	"scala":                  CategorySkill,
	"javascript":             CategorySkill,
	"typescript":             CategorySkill,
	"golang":                 CategorySkill,
	"bash":                   CategorySkill,
	"sql":                    CategorySkill,
	"nosql":                  CategorySkill,
	"oop":                    CategorySkill,
	"algorithms":             CategorySkill,
	"data structures":        CategorySkill,
	"functional programming": CategorySkill,
	"data cleaning":          CategorySkill,
	"data wrangling":         CategorySkill,
	"data preprocessing":     CategorySkill,
	"data modeling":          CategorySkill,
	"schema design":          CategorySkill,
	"machine learning":       CategorySkill,
	"deep learning":          CategorySkill,
	"neural networks":        CategorySkill,
	"supervised learning":    CategorySkill,
	"unsupervised learning":  CategorySkill,
	"reinforcement learning": CategorySkill,
	"feature engineering":    CategorySkill,
	"model training":         CategorySkill,
	"model evaluation":       CategorySkill,
	"model deployment":       CategorySkill,
	"hyperparameter tuning":  CategorySkill,
	"cross validation":       CategorySkill,
	"statistics":             CategorySkill,
	"probability":            CategorySkill,
	"hypothesis testing":     CategorySkill,
	"a/b testing":            CategorySkill,
	"regression":             CategorySkill,
	"classification":         CategorySkill,
	"clustering":             CategorySkill,
	"forecasting":            CategorySkill,
	"time series":            CategorySkill,
	"anomaly detection":      CategorySkill,
	"fraud detection":        CategorySkill,
	"churn prediction":       CategorySkill,
	"customer segmentation":  CategorySkill,
	"recommendation system":  CategorySkill,
	"data visualization":     CategorySkill,
	"business intelligence":  CategorySkill,
	"etl":                    CategorySkill,
	"elt":                    CategorySkill,
	"data pipeline":          CategorySkill,
	"microservices":          CategorySkill,
	"rest":                   CategorySkill,
	"restful":                CategorySkill,
	"api":                    CategorySkill,
	"apis":                   CategorySkill,
	"grpc":                   CategorySkill,
	"graphql":                CategorySkill,
	"streaming":              CategorySkill,
	"distributed systems":    CategorySkill,
	"performance tuning":     CategorySkill,
	"scalability":            CategorySkill,
	"fault tolerance":        CategorySkill,
	"high availability":      CategorySkill,
	"observability":          CategorySkill,
	"mlops":                  CategorySkill,
	"feature selection":      CategorySkill,

	// Tools, platforms, and services.
	"pandas":         CategoryTool,
	"numpy":          CategoryTool,
	"scipy":          CategoryTool,
	"polars":         CategoryTool,
	"postgresql":     CategoryTool,
	"mysql":          CategoryTool,
	"sqlite":         CategoryTool,
	"oracle":         CategoryTool,
	"mongodb":        CategoryTool,
	"cassandra":      CategoryTool,
	"dynamodb":       CategoryTool,
	"redis":          CategoryTool,
	"elasticsearch":  CategoryTool,
	"tableau":        CategoryTool,
	"power bi":       CategoryTool,
	"excel":          CategoryTool,
	"looker":         CategoryTool,
	"matplotlib":     CategoryTool,
	"seaborn":        CategoryTool,
	"plotly":         CategoryTool,
	"fastapi":        CategoryTool,
	"django":         CategoryTool,
	"flask":          CategoryTool,
	"spring boot":    CategoryTool,
	"aws":            CategoryTool,
	"gcp":            CategoryTool,
	"azure":          CategoryTool,
	"ec2":            CategoryTool,
	"s3":             CategoryTool,
	"lambda":         CategoryTool,
	"docker":         CategoryTool,
	"kubernetes":     CategoryTool,
	"helm":           CategoryTool,
	"terraform":      CategoryTool,
	"ci/cd":          CategoryTool,
	"github actions": CategoryTool,
	"gitlab ci":      CategoryTool,
	"jenkins":        CategoryTool,
	"git":            CategoryTool,
	"spark":          CategoryTool,
	"pyspark":        CategoryTool,
	"hadoop":         CategoryTool,
	"hive":           CategoryTool,
	"kafka":          CategoryTool,
	"flink":          CategoryTool,
	"airflow":        CategoryTool,
	"dbt":            CategoryTool,
	"prefect":        CategoryTool,
	"tensorflow":     CategoryTool,
	"pytorch":        CategoryTool,
	"keras":          CategoryTool,
	"scikit-learn":   CategoryTool,
	"xgboost":        CategoryTool,
	"lightgbm":       CategoryTool,
	"catboost":       CategoryTool,
	"linux":          CategoryTool,
	"grafana":        CategoryTool,
	"prometheus":     CategoryTool,

	// Qualifications.
	"bachelor":            CategoryQualification,
	"bachelors":           CategoryQualification,
	"master":              CategoryQualification,
	"masters":             CategoryQualification,
	"phd":                 CategoryQualification,
	"degree":              CategoryQualification,
	"certification":       CategoryQualification,
	"certified":           CategoryQualification,
	"years of experience": CategoryQualification,
	"computer science":    CategoryQualification,

	// Soft skills listed explicitly so multiword phrases match as one term.
	"stakeholder management":  CategorySoft,
	"communication":           CategorySoft,
	"presentation":            CategorySoft,
	"documentation":           CategorySoft,
	"leadership":              CategorySoft,
	"ownership":               CategorySoft,
	"mentoring":               CategorySoft,
	"coaching":                CategorySoft,
	"code review":             CategorySoft,
	"collaboration":           CategorySoft,
	"cross-functional":        CategorySoft,
	"agile":                   CategorySoft,
	"scrum":                   CategorySoft,
	"kanban":                  CategorySoft,
	"problem solving":         CategorySoft,
	"critical thinking":       CategorySoft,
	"analytical thinking":     CategorySoft,
	"continuous improvement":  CategorySoft,
	"data-driven decisions":   CategorySoft,
	"knowledge sharing":       CategorySoft,
	"strategic thinking":      CategorySoft,
	"data quality":            CategorySoft,
	"data storytelling":       CategorySoft,
	"decision making":         CategorySoft,
	"business impact":         CategorySoft,
	"attention to detail":     CategorySoft,
}

// stopwords are dropped before single-token classification.
var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "from": true, "as": true, "is": true, "was": true,
	"are": true, "be": true, "been": true, "have": true, "has": true, "had": true,
	"do": true, "does": true, "did": true, "will": true, "would": true,
	"could": true, "should": true, "may": true, "might": true, "can": true,
	"we": true, "you": true, "i": true, "he": true, "she": true, "it": true,
	"they": true, "this": true, "that": true, "these": true, "those": true,
	"your": true, "our": true, "my": true, "his": true, "her": true,
	"their": true, "its": true, "about": true, "into": true, "over": true,
	"under": true, "more": true, "most": true, "other": true, "some": true,
	"such": true, "than": true, "then": true, "also": true, "both": true,
	"each": true, "all": true, "any": true, "who": true, "what": true,
	"when": true, "where": true, "which": true, "while": true, "not": true,
	"no": true, "nor": true, "so": true, "too": true, "very": true,
	"just": true, "only": true, "own": true, "same": true, "via": true,
	"etc": true, "per": true, "plus": true, "using": true, "used": true,
	"use": true, "work": true, "working": true, "role": true, "team": true,
	"teams": true, "strong": true, "ability": true, "including": true,
	"required": true, "preferred": true, "must": true, "nice": true,
	"looking": true, "join": true, "well": true, "within": true, "across": true,
}
