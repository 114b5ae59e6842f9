package pagination

// ProseStylesheet is the compact prose style the editor flow is rendered
// with. DefaultBlockStyles mirrors these metrics.
const ProseStylesheet = `.prose { font-family: ui-sans-serif, system-ui, sans-serif; font-size: 14px; line-height: 24px; color: #111827; }
.prose > :first-child { margin-top: 0; }
.prose > :last-child { margin-bottom: 0; }
.prose p { margin: 16px 0; }
.prose h1 { font-size: 30px; line-height: 36px; margin: 0 0 24px; font-weight: 800; }
.prose h2 { font-size: 20px; line-height: 28px; margin: 32px 0 16px; font-weight: 700; }
.prose h3 { font-size: 18px; line-height: 28px; margin: 28px 0 8px; font-weight: 600; }
.prose h4 { font-size: 14px; line-height: 20px; margin: 20px 0 8px; font-weight: 600; }
.prose ul, .prose ol { margin: 16px 0; padding-left: 22px; }
.prose li { margin: 4px 0; }
.prose li > p { margin: 0; }
.prose blockquote { margin: 22px 0; padding-left: 16px; border-left: 3px solid #e5e7eb; }
.prose pre { margin: 20px 0; padding: 10px 14px; font-size: 12px; line-height: 20px; }
.prose hr { margin: 24px 0; border: 0; border-top: 1px solid #e5e7eb; }
.prose table { margin: 24px 0; width: 100%; border-collapse: collapse; }`
